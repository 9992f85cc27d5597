package mcp

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/thoreinstein/zcf/internal/errors"
)

// Severity separates blocking problems from advisories.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return "unknown"
	}
}

// Issue is one validation finding for a server.
type Issue struct {
	Field    string
	Message  string
	Severity Severity
}

func (i Issue) String() string {
	if i.Field == "" {
		return fmt.Sprintf("%s: %s", i.Severity, i.Message)
	}
	return fmt.Sprintf("%s: %s: %s", i.Severity, i.Field, i.Message)
}

var (
	validTransports = []string{TransportStdio, TransportSSE, TransportHTTP, ""}
	namePattern     = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.-]*$`)
)

// Check returns every issue found in s.
func Check(s *Server) []Issue {
	var issues []Issue
	add := func(sev Severity, field, format string, args ...any) {
		issues = append(issues, Issue{Field: field, Message: fmt.Sprintf(format, args...), Severity: sev})
	}

	if !namePattern.MatchString(s.Name) {
		add(SeverityError, "name", "%q is not a valid server name", s.Name)
	}
	if !slices.Contains(validTransports, s.Transport) {
		add(SeverityError, "transport", "must be stdio, sse or http")
	}

	switch s.EffectiveTransport() {
	case TransportStdio:
		if s.Command == "" {
			add(SeverityError, "command", "stdio servers require a command")
		}
	default:
		if s.URL == "" {
			add(SeverityError, "url", "%s servers require a URL", s.EffectiveTransport())
		}
	}
	if s.Command != "" && s.URL != "" {
		add(SeverityWarning, "", "server has both command and URL; %s is used", s.EffectiveTransport())
	}
	for k := range s.Env {
		if strings.TrimSpace(k) == "" {
			add(SeverityError, "env", "environment variable key is empty")
		}
	}
	for k := range s.Headers {
		if strings.TrimSpace(k) == "" {
			add(SeverityError, "headers", "header key is empty")
		}
	}
	return issues
}

// Validate returns the error-severity issues of s as validation errors.
func Validate(s *Server) error {
	var errs []error
	for _, issue := range Check(s) {
		if issue.Severity != SeverityError {
			continue
		}
		field := "server"
		if issue.Field != "" {
			field = "server." + issue.Field
		}
		errs = append(errs, errors.NewValidationError(field, "%s", issue.Message))
	}
	return errors.Join(errs...)
}

// Warnings returns the advisory issues of s.
func Warnings(s *Server) []Issue {
	var out []Issue
	for _, issue := range Check(s) {
		if issue.Severity == SeverityWarning {
			out = append(out, issue)
		}
	}
	return out
}
