package config

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadValidationErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		wantErr   error
		name      string
		yamlData  string
		wantField string
	}{
		{
			name:      "unknown severity",
			yamlData:  "rules:\n  eqeqeq: fatal\n",
			wantErr:   ErrInvalidSeverity,
			wantField: "rules.eqeqeq",
		},
		{
			name:      "unknown severity in list form",
			yamlData:  "rules:\n  quotes: [strict, double]\n",
			wantErr:   ErrInvalidSeverity,
			wantField: "rules.quotes",
		},
		{
			name:      "numeric severity",
			yamlData:  "rules:\n  semi: 2\n",
			wantErr:   ErrInvalidSeverity,
			wantField: "rules.semi",
		},
		{
			name:      "rule as mapping",
			yamlData:  "rules:\n  semi: {level: error}\n",
			wantErr:   ErrInvalidRuleSetting,
			wantField: "rules.semi",
		},
		{
			name:      "override severity",
			yamlData:  "overrides:\n  - files: ['*.ts']\n    rules:\n      semi: loud\n",
			wantErr:   ErrInvalidSeverity,
			wantField: "overrides[0].rules.semi",
		},
		{
			name:      "empty override files list",
			yamlData:  "overrides:\n  - files: []\n    rules:\n      semi: warn\n",
			wantErr:   ErrEmptyFiles,
			wantField: "overrides[0].files",
		},
		{
			name:      "missing override files",
			yamlData:  "overrides:\n  - rules:\n      semi: warn\n",
			wantErr:   ErrEmptyFiles,
			wantField: "overrides[0].files",
		},
		{
			name:      "declared but empty parser",
			yamlData:  "parser: \"\"\n",
			wantErr:   ErrEmptyParser,
			wantField: "parser",
		},
		{
			name:      "declared but empty override parser",
			yamlData:  "overrides:\n  - files: ['*.vue']\n    parser: ''\n",
			wantErr:   ErrEmptyParser,
			wantField: "overrides[0].parser",
		},
		{
			name:      "bad ignore glob",
			yamlData:  "ignorePatterns: ['ok/**', 'bad[']\n",
			wantErr:   ErrInvalidPattern,
			wantField: "ignorePatterns[1]",
		},
		{
			name:      "bad files glob",
			yamlData:  "overrides:\n  - files: ['src/[x']\n",
			wantErr:   ErrInvalidPattern,
			wantField: "overrides[0].files[0]",
		},
		{
			name:      "negated files glob",
			yamlData:  "overrides:\n  - files: ['*.ts', '!*.d.ts']\n",
			wantErr:   ErrNegatedFiles,
			wantField: "overrides[0].files[1]",
		},
		{
			name:      "non-string in list",
			yamlData:  "extends: [base, 3]\n",
			wantErr:   ErrInvalidList,
			wantField: "extends[1]",
		},
		{
			name:      "mapping instead of list",
			yamlData:  "ignorePatterns: {dist: true}\n",
			wantErr:   ErrInvalidList,
			wantField: "ignorePatterns",
		},
		{
			name:      "bad global",
			yamlData:  "globals:\n  $: sometimes\n",
			wantErr:   ErrInvalidGlobal,
			wantField: "globals.$",
		},
		{
			name:     "unknown key",
			yamlData: "rulez:\n  semi: error\n",
			wantErr:  ErrMalformedConfig,
		},
		{
			name:     "env must be boolean",
			yamlData: "env:\n  browser: sometimes\n",
			wantErr:  ErrMalformedConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := LoadFromBytes([]byte(tt.yamlData), FormatYAML)
			require.Error(t, err)
			require.ErrorIs(t, err, tt.wantErr)

			var validationErr *ValidationError
			require.True(t, errors.As(err, &validationErr), "expected ValidationError, got %T", err)
			assert.Equal(t, tt.wantField, validationErr.Field)
		})
	}
}

func TestLoadAcceptsAllSeverities(t *testing.T) {
	t.Parallel()

	for _, severity := range []string{"off", "warn", "error"} {
		t.Run(severity, func(t *testing.T) {
			t.Parallel()

			config, err := LoadFromBytes([]byte("rules:\n  r: "+`"`+severity+`"`+"\n"), FormatYAML)
			require.NoError(t, err)
			assert.Equal(t, Severity(severity), config.Rules["r"].Severity)
			assert.Empty(t, config.Rules["r"].Options)
		})
	}
}

func TestLoadTOMLValidation(t *testing.T) {
	t.Parallel()

	_, err := LoadFromBytes([]byte("[rules]\nsemi = \"fatal\"\n"), FormatTOML)
	require.ErrorIs(t, err, ErrInvalidSeverity)

	_, err = LoadFromBytes([]byte("unknown = 1\n"), FormatTOML)
	require.ErrorIs(t, err, ErrMalformedConfig)
}

func TestValidateInMemoryConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		config  *Config
		wantErr error
		name    string
	}{
		{
			name:   "valid",
			config: &Config{Rules: map[string]RuleSetting{"semi": {Severity: SeverityWarn}}},
		},
		{
			name:    "zero severity",
			config:  &Config{Rules: map[string]RuleSetting{"semi": {}}},
			wantErr: ErrInvalidSeverity,
		},
		{
			name:    "whitespace parser",
			config:  &Config{Parser: "  "},
			wantErr: ErrEmptyParser,
		},
		{
			name:    "declared empty parser",
			config:  &Config{HasParser: true},
			wantErr: ErrEmptyParser,
		},
		{
			name: "declared empty override parser",
			config: &Config{Overrides: []Override{{
				Files:     []string{"*.ts"},
				HasParser: true,
			}}},
			wantErr: ErrEmptyParser,
		},
		{
			name:   "undeclared parser",
			config: &Config{Overrides: []Override{{Files: []string{"*.ts"}}}},
		},
		{
			name:    "override without files",
			config:  &Config{Overrides: []Override{{Rules: map[string]RuleSetting{"semi": {Severity: SeverityOff}}}}},
			wantErr: ErrEmptyFiles,
		},
		{
			name:    "bad global value",
			config:  &Config{Globals: map[string]Global{"x": "maybe"}},
			wantErr: ErrInvalidGlobal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.config.Validate()
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidationErrorMessage(t *testing.T) {
	t.Parallel()

	err := &ValidationError{Field: "rules.semi", Err: ErrInvalidSeverity}
	assert.Equal(t, "rules.semi: "+ErrInvalidSeverity.Error(), err.Error())

	bare := &ValidationError{Err: ErrMalformedConfig}
	assert.Equal(t, ErrMalformedConfig.Error(), bare.Error())
}

func TestParseGlobal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   any
		name    string
		want    Global
		wantErr bool
	}{
		{name: "readonly", input: "readonly", want: GlobalReadonly},
		{name: "legacy readable", input: "readable", want: GlobalReadonly},
		{name: "writable", input: "writable", want: GlobalWritable},
		{name: "legacy writeable", input: "writeable", want: GlobalWritable},
		{name: "off", input: "off", want: GlobalOff},
		{name: "true", input: true, want: GlobalWritable},
		{name: "false", input: false, want: GlobalReadonly},
		{name: "unknown", input: "sometimes", wantErr: true},
		{name: "number", input: 1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseGlobal(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidGlobal)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
