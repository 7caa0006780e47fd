package docker

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

// Inspect fetches container metadata for the info view and the picker
// preview panel.
func (c *Client) Inspect(ctx context.Context, id string) (Details, error) {
	target := strings.TrimSpace(id)
	if target == "" {
		return Details{}, fmt.Errorf("container id required")
	}
	output, err := c.run(ctx, "inspect", "--format", "{{json .}}", target)
	if err != nil {
		return Details{}, err
	}
	return parseInspect(target, string(output))
}

func parseInspect(id, raw string) (Details, error) {
	doc := strings.TrimSpace(raw)
	if !gjson.Valid(doc) {
		return Details{}, fmt.Errorf("inspect %s: invalid JSON", id)
	}
	root := gjson.Parse(doc)
	details := Details{
		ID:        root.Get("Id").String(),
		Name:      strings.TrimPrefix(root.Get("Name").String(), "/"),
		Image:     root.Get("Config.Image").String(),
		Status:    root.Get("State.Status").String(),
		ExitCode:  int(root.Get("State.ExitCode").Int()),
		Command:   inspectCommand(root),
		IPAddress: inspectIPAddress(root),
		Ports:     inspectPorts(root),
		Labels:    inspectLabels(root),
	}
	if created := root.Get("Created").String(); created != "" {
		if at, err := time.Parse(time.RFC3339Nano, created); err == nil {
			details.Created = at
		}
	}
	if details.ID == "" {
		details.ID = id
	}
	return details, nil
}

func inspectCommand(root gjson.Result) string {
	parts := []string{root.Get("Path").String()}
	for _, arg := range root.Get("Args").Array() {
		parts = append(parts, arg.String())
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}

// inspectIPAddress prefers the top-level address and falls back to the
// default bridge network, which is where dockerd moved it long ago.
func inspectIPAddress(root gjson.Result) string {
	if ip := root.Get("NetworkSettings.IPAddress").String(); ip != "" {
		return ip
	}
	return root.Get("NetworkSettings.Networks.bridge.IPAddress").String()
}

func inspectPorts(root gjson.Result) []string {
	var ports []string
	root.Get("NetworkSettings.Ports").ForEach(func(key, value gjson.Result) bool {
		spec := key.String()
		if !value.IsArray() || len(value.Array()) == 0 {
			ports = append(ports, spec)
			return true
		}
		for _, binding := range value.Array() {
			hostIP := binding.Get("HostIp").String()
			hostPort := binding.Get("HostPort").String()
			if hostPort == "" {
				ports = append(ports, spec)
				continue
			}
			if hostIP == "" {
				hostIP = "0.0.0.0"
			}
			ports = append(ports, fmt.Sprintf("%s:%s->%s", hostIP, hostPort, spec))
		}
		return true
	})
	return ports
}

func inspectLabels(root gjson.Result) map[string]string {
	labels := root.Get("Config.Labels")
	if !labels.IsObject() {
		return nil
	}
	out := make(map[string]string)
	labels.ForEach(func(key, value gjson.Result) bool {
		out[key.String()] = value.String()
		return true
	})
	return out
}
