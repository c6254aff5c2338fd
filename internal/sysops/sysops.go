package sysops

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// Controller shells out to the platform opener. The command runner is a
// field so tests can intercept invocations.
type Controller struct {
	run func(name string, args ...string) error
}

func NewController() *Controller {
	return &Controller{
		run: func(name string, args ...string) error {
			return exec.Command(name, args...).Start()
		},
	}
}

func (c *Controller) OpenURL(rawURL string) error {
	url := strings.TrimSpace(rawURL)
	if url == "" {
		return fmt.Errorf("sysops: empty url")
	}
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		url = "https://" + url
	}
	return c.open(url)
}

func (c *Controller) OpenFile(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("sysops: empty path")
	}
	return c.open(path)
}

func (c *Controller) OpenFolder(path string) error {
	return c.OpenFile(path)
}

func (c *Controller) OpenApplication(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("sysops: empty application name")
	}
	switch runtime.GOOS {
	case "darwin":
		return c.run("open", "-a", name)
	case "windows":
		return c.run("cmd", "/c", "start", "", name)
	default:
		return c.run(name)
	}
}

func (c *Controller) open(target string) error {
	switch runtime.GOOS {
	case "darwin":
		return c.run("open", target)
	case "windows":
		return c.run("cmd", "/c", "start", "", target)
	default:
		return c.run("xdg-open", target)
	}
}
