package cliexec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestValidator_IsAllowed(t *testing.T) {
	v := NewValidator(nil, zap.NewNop())

	tests := []struct {
		name    string
		command string
		want    bool
	}{
		{"comando rosa", "rosa list clusters", true},
		{"comando oc", "oc get nodes", true},
		{"comando aws", "aws sts get-caller-identity", true},
		{"comando ocm", "ocm describe cluster foo", true},
		{"binario fora da lista", "kubectl get pods", false},
		{"comando destrutivo", "rm -rf /", false},
		{"string vazia", "", false},
		{"apenas espacos", "   ", false},
		{"aspas desbalanceadas", `rosa list "clusters`, false},
		{"prefixo em palavra maior", "rosacli whatever", true},
		{"flags e pipes apos binario permitido", "oc get pods -A | grep Running", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, v.IsAllowed(tt.command))
		})
	}
}

func TestValidator_CustomPrefixes(t *testing.T) {
	v := NewValidator([]string{"echo"}, zap.NewNop())

	assert.True(t, v.IsAllowed("echo hello"))
	assert.False(t, v.IsAllowed("rosa list clusters"))
}

func TestValidator_PrefixesReturnsCopy(t *testing.T) {
	v := NewValidator([]string{"rosa", "oc"}, zap.NewNop())

	prefixes := v.Prefixes()
	prefixes[0] = "mutated"

	assert.Equal(t, []string{"rosa", "oc"}, v.Prefixes())
}
