package mockgen

import (
	"strings"
	"testing"
)

func TestGenerateRejectsEmptyInterfaceName(t *testing.T) {
	if _, err := Generate(GenOptions{}); err == nil {
		t.Fatalf("expected an error when InterfaceName is empty")
	}
}

func TestGenerateProducesAMockForProcessHandle(t *testing.T) {
	code, err := Generate(GenOptions{
		InterfaceName:  "ProcessHandle",
		SourcePatterns: []string{"../child"},
	})
	if err != nil {
		t.Fatalf("Generate returned an error: %v", err)
	}
	for _, want := range []string{"ProcessHandleMock", "func (m *ProcessHandleMock) Kill()", "func (m *ProcessHandleMock) Wait()", "func (m *ProcessHandleMock) WaitWithTimeout("} {
		if !strings.Contains(code, want) {
			t.Fatalf("generated mock missing %q:\n%s", want, code)
		}
	}
}

func TestGenerateReportsUnknownInterface(t *testing.T) {
	if _, err := Generate(GenOptions{InterfaceName: "NoSuchInterface", SourcePatterns: []string{"../child"}}); err == nil {
		t.Fatalf("expected an error for an unknown interface name")
	}
}
