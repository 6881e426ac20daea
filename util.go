package main

import (
	"fmt"
	"os/exec"
	"strings"
)

// MachineID returns the systemd machine id, used to disambiguate agents
// publishing under a shared topic prefix.
func MachineID() (string, error) {
	out, err := exec.Command("systemd-id128", "machine-id", "-u").Output()
	if err != nil {
		return "", fmt.Errorf("failed to retrieve machine-id: %w", err)
	}

	return strings.TrimSpace(string(out)), nil
}
