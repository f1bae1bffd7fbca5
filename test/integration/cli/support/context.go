// Package support holds the step definitions driving the tempo CLI
// in-process during integration tests.
package support

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/MeKo-Tech/tempo/cmd/tempo/cmd"
	"github.com/cucumber/godog"
)

// TestContext runs the tempo CLI in-process and captures its output.
type TestContext struct {
	out     bytes.Buffer
	lastErr error
}

// NewTestContext returns an empty context.
func NewTestContext() *TestContext {
	return &TestContext{}
}

// RegisterSteps binds the step definitions to the scenario.
func (c *TestContext) RegisterSteps(sc *godog.ScenarioContext) {
	sc.Step(`^I run tempo with arguments "([^"]*)"$`, c.runTempo)
	sc.Step(`^the command succeeds$`, c.commandSucceeds)
	sc.Step(`^the command fails$`, c.commandFails)
	sc.Step(`^the output contains "([^"]*)"$`, c.outputContains)
}

func (c *TestContext) runTempo(args string) error {
	c.out.Reset()

	root := cmd.GetRootCommand()
	root.SetOut(&c.out)
	root.SetErr(&c.out)
	root.SetArgs(strings.Fields(args))

	c.lastErr = root.Execute()
	return nil
}

func (c *TestContext) commandSucceeds() error {
	if c.lastErr != nil {
		return fmt.Errorf("expected success, command failed: %w", c.lastErr)
	}
	return nil
}

func (c *TestContext) commandFails() error {
	if c.lastErr == nil {
		return fmt.Errorf("expected failure, command succeeded with output:\n%s", c.out.String())
	}
	return nil
}

func (c *TestContext) outputContains(want string) error {
	if !strings.Contains(c.out.String(), want) {
		return fmt.Errorf("output does not contain %q:\n%s", want, c.out.String())
	}
	return nil
}
