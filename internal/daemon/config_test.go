package daemon

import (
	"github.com/icinga/icinga-filter/internal"
	"github.com/icinga/icinga-filter/internal/query"
	"github.com/icinga/icinga-filter/internal/records"
	"github.com/icinga/icinga-filter/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"testing"
)

func TestFromFile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		config  string
		flags   Flags
		want    func(t *testing.T, c *ConfigFile)
		wantErr string
	}{
		{
			name:   "defaults",
			config: `records: /var/lib/records.yml`,
			want: func(t *testing.T, c *ConfigFile) {
				assert.Equal(t, "/var/lib/records.yml", c.Records)
				assert.Equal(t, records.FormatTable, c.Output)
				assert.Empty(t, c.Query)
				assert.Equal(t, zap.InfoLevel, c.Logging.Level)
			},
		},
		{
			name: "full",
			config: `
records: records.json
output: yaml
query:
  - where: {field: status, value: open}
  - or-group:
      - where-in: {field: priority, values: [1, 2]}
logging:
  level: debug
`,
			want: func(t *testing.T, c *ConfigFile) {
				assert.Equal(t, records.FormatYAML, c.Output)
				assert.Equal(t, zap.DebugLevel, c.Logging.Level)
				require.Len(t, c.Query, 2)
				assert.Equal(t, &query.Condition{Field: "status", Value: "open"}, c.Query[0].Where)
				require.Len(t, c.Query[1].OrGroup, 1)
				assert.Equal(t, "priority", c.Query[1].OrGroup[0].WhereIn.Field)
			},
		},
		{
			name:   "flag-overrides",
			config: `{records: a.yml, output: yaml}`,
			flags:  Flags{Records: "b.yml", Output: "table"},
			want: func(t *testing.T, c *ConfigFile) {
				assert.Equal(t, "b.yml", c.Records)
				assert.Equal(t, records.FormatTable, c.Output)
			},
		},
		{
			name:   "default-records",
			config: `output: table`,
			want: func(t *testing.T, c *ConfigFile) {
				assert.Equal(t, internal.SysConfDir+"/icinga-filter/records.yml", c.Records)
			},
		},
		{
			name:    "records-missing",
			config:  `records: ""`,
			wantErr: "records file missing",
		},
		{
			name:   "records-from-flag",
			config: `output: table`,
			flags:  Flags{Records: "records.yml"},
			want:   func(t *testing.T, c *ConfigFile) { assert.Equal(t, "records.yml", c.Records) },
		},
		{
			name:    "invalid-output",
			config:  `{records: a.yml, output: csv}`,
			wantErr: `invalid output format "csv", expected one of "table" or "yaml"`,
		},
		{
			name:    "invalid-output-from-flag",
			config:  `records: a.yml`,
			flags:   Flags{Output: "json"},
			wantErr: `invalid output format "json", expected one of "table" or "yaml"`,
		},
		{
			name: "invalid-query",
			config: `
records: a.yml
query:
  - {where: {field: a}, where-in: {field: b}}
`,
			wantErr: "step 0: exactly one call expected, got [where where-in]",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c, err := FromFile(testutils.WriteFile(t, "config.yml", tt.config), tt.flags)
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			tt.want(t, c)
		})
	}

	t.Run("unknown-key", func(t *testing.T) {
		t.Parallel()

		_, err := FromFile(testutils.WriteFile(t, "config.yml", "records: a.yml\nqeury: []"), Flags{})
		assert.Error(t, err)
	})

	t.Run("missing-file", func(t *testing.T) {
		t.Parallel()

		_, err := FromFile(t.TempDir()+"/config.yml", Flags{})
		assert.Error(t, err)
	})
}
