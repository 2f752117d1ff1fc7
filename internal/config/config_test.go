package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"abi2ts/grammar"
	"abi2ts/internal/abi"
	"abi2ts/internal/emitter"
)

func TestParseFull(t *testing.T) {
	data := []byte(`
out: generated
extension: .mts
policy: legacy
getterPrefix: read
selectors: true
verify: true
indent: "    "
capability:
  name: Wallet
  import: ./Wallet
  field: wallet
`)
	cfg, err := Parse("abi2ts.yaml", data)
	require.NoError(t, err)

	assert.Equal(t, "generated", cfg.Out)
	assert.Equal(t, "mts", cfg.Extension)
	assert.True(t, cfg.Verify)

	opts, err := cfg.EmitterOptions()
	require.NoError(t, err)
	assert.Equal(t, emitter.PolicyLegacy, opts.Policy)
	assert.Equal(t, "read", opts.GetterPrefix)
	assert.True(t, opts.Selectors)
	assert.Equal(t, "    ", opts.Indent)
	assert.Equal(t, emitter.Capability{Name: "Wallet", Import: "./Wallet", Field: "wallet"}, opts.Capability)
}

func TestParseEmptyUsesDefaults(t *testing.T) {
	cfg, err := Parse("abi2ts.yaml", nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	opts, err := cfg.EmitterOptions()
	require.NoError(t, err)
	assert.Equal(t, emitter.DefaultOptions(), opts)
}

func TestLegacyCapabilityDefaults(t *testing.T) {
	cfg, err := Parse("abi2ts.yaml", []byte("policy: legacy\ncapability:\n  field: inner\n"))
	require.NoError(t, err)

	opts, err := cfg.EmitterOptions()
	require.NoError(t, err)
	assert.Equal(t, "ethers.Contract", opts.Capability.Name)
	assert.Equal(t, "ethers", opts.Capability.Binding)
	assert.Equal(t, "inner", opts.Capability.Field)
}

func TestParseRejects(t *testing.T) {
	testCases := []struct {
		name    string
		data    string
		key     string
		message string
	}{
		{"unknown key", "polcy: legacy\n", "", "field polcy not found"},
		{"bad policy", "policy: strict\n", "policy", `unknown policy "strict"`},
		{"empty extension", "extension: .\n", "extension", "extension must not be empty"},
		{"extension with separator", "extension: a/b\n", "extension", "path separator"},
		{"bad indent", "indent: xx\n", "indent", "indent must only contain"},
		{"bad field", "capability:\n  field: 1abc\n", "capability.field", "capability.field"},
		{"bad binding", "capability:\n  binding: a.b\n", "capability.binding", "capability.binding"},
		{"bad getter prefix", "getterPrefix: get-\n", "getterPrefix", "getterPrefix"},
		{"bad capability name", "capability:\n  name: My Contract\n", "capability.name", "capability.name"},
		{"dotted local capability", "capability:\n  name: ethers.Contract\n  import: ./ethers\n", "capability.name", "plain identifier"},
		{"dotted default capability", "capability:\n  name: ethers.Contract\n", "capability.name", "plain identifier"},
		{"malformed", "out: [\n", "", "failed to parse YAML"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse("abi2ts.yaml", []byte(tc.data))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.message)

			var cfgErr *Error
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, "abi2ts.yaml", cfgErr.Path)
			assert.Equal(t, tc.key, cfgErr.Key)
		})
	}
}

func TestLoadOptional(t *testing.T) {
	dir := t.TempDir()

	cfg, err := LoadOptional(filepath.Join(dir, DefaultPath))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("out: build\nselectors: true\n"), 0o644))

	cfg, err = LoadOptional(path)
	require.NoError(t, err)
	assert.Equal(t, "build", cfg.Out)
	assert.True(t, cfg.Selectors)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read config file")
}

func TestDottedCapabilityImportsNamespace(t *testing.T) {
	cfg, err := Parse("abi2ts.yaml", []byte("capability:\n  name: ethers.Contract\n  import: ethers\n"))
	require.NoError(t, err)

	opts, err := cfg.EmitterOptions()
	require.NoError(t, err)

	out, err := emitter.New(opts).Emit(&abi.Contract{Name: "T"})
	require.NoError(t, err)
	assert.Contains(t, out, `import ethers from "ethers";`)
	assert.Contains(t, out, "constructor(private readonly contract: ethers.Contract) {}")

	_, err = grammar.ParseString("T.ts", out)
	assert.NoError(t, err)

	cfg, err = Parse("abi2ts.yaml", []byte("capability:\n  name: web3.Contract\n  binding: Web3\n  import: web3\n"))
	require.NoError(t, err)
	opts, err = cfg.EmitterOptions()
	require.NoError(t, err)
	assert.Equal(t, emitter.Capability{Name: "web3.Contract", Binding: "Web3", Import: "web3", Field: "contract"}, opts.Capability)
}
