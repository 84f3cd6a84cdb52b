package deps

import (
	"fmt"
	"os/exec"
	"strings"
)

// Requirement defines an external dependency tidymux relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Path        string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// MissingBinaryError reports an executable that cannot be found.
type MissingBinaryError struct {
	Command string
	Err     error
}

func (e *MissingBinaryError) Error() string {
	if strings.TrimSpace(e.Command) == "" {
		return "command not configured"
	}
	return fmt.Sprintf("binary %q not found", e.Command)
}

func (e *MissingBinaryError) Unwrap() error {
	return e.Err
}

// ResolveBinary returns the path the command resolves to on PATH, or a
// *MissingBinaryError.
func ResolveBinary(command string) (string, error) {
	cmd := strings.TrimSpace(command)
	if cmd == "" {
		return "", &MissingBinaryError{}
	}
	path, err := exec.LookPath(cmd)
	if err != nil {
		return "", &MissingBinaryError{Command: cmd, Err: err}
	}
	return path, nil
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		path, err := ResolveBinary(cmd)
		if err != nil {
			status.Detail = err.Error()
			results = append(results, status)
			continue
		}
		status.Path = path
		status.Available = true
		results = append(results, status)
	}
	return results
}

// Missing returns the required (non-optional) dependencies that are unavailable.
func Missing(statuses []Status) []Status {
	var out []Status
	for _, status := range statuses {
		if !status.Available && !status.Optional {
			out = append(out, status)
		}
	}
	return out
}
