// SPDX-License-Identifier: MIT

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const yamlJobs = `
jobs:
  - name: jiotv
    kind: download
    source_env: JIO_EPG_URL
    days: 2
  - name: personal
    kind: merge
    manifest: scripts/personal/sites.txt
    source_dir: tmp_xml
    output: guide/guide.xml.gz
    days: 3
    sort: alphanumeric
    channel_prefix: ""
`

const tomlJobs = `
[[jobs]]
name = "tempest"
kind = "tempest"
source = "temp_epg/tempest_config/epg/epg.xml"
output = "guide/epg.xml.gz"
`

func TestParseJobFile_YAML(t *testing.T) {
	f, err := ParseJobFile([]byte(yamlJobs), ".yaml")
	require.NoError(t, err)
	require.Len(t, f.Jobs, 2)

	assert.Equal(t, KindDownload, f.Jobs[0].Kind)
	assert.Nil(t, f.Jobs[0].ChannelPrefix)

	merge := f.Jobs[1]
	assert.Equal(t, "tmp_xml", merge.SourceDir)
	assert.Equal(t, 3, merge.Days)
	require.NotNil(t, merge.ChannelPrefix)
	assert.Equal(t, "", *merge.ChannelPrefix)
}

func TestParseJobFile_TOML(t *testing.T) {
	f, err := ParseJobFile([]byte(tomlJobs), "toml")
	require.NoError(t, err)
	require.Len(t, f.Jobs, 1)
	assert.Equal(t, "temp_epg/tempest_config/epg/epg.xml", f.Jobs[0].Source)
}

func TestParseJobFile_UnknownFieldRejected(t *testing.T) {
	_, err := ParseJobFile([]byte("jobs:\n  - name: a\n    kind: download\n    retries: 3\n"), "yml")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownConfigField), "yaml: %v", err)

	_, err = ParseJobFile([]byte("[[jobs]]\nname = \"a\"\nkind = \"download\"\nretries = 3\n"), "toml")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownConfigField), "toml: %v", err)
}

func TestParseJobFile_UnsupportedFormat(t *testing.T) {
	_, err := ParseJobFile([]byte(`{"jobs":[]}`), ".json")
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
}

func TestParseJobFile_Empty(t *testing.T) {
	_, err := ParseJobFile(nil, "yaml")
	assert.True(t, errors.Is(err, ErrNoJobs))
}

func TestJobFileValidate(t *testing.T) {
	tests := []struct {
		name    string
		jobs    []JobSpec
		wantErr error
	}{
		{
			name:    "missing name",
			jobs:    []JobSpec{{Kind: KindDownload}},
			wantErr: ErrInvalidJob,
		},
		{
			name:    "unknown kind",
			jobs:    []JobSpec{{Name: "a", Kind: "upload"}},
			wantErr: ErrInvalidJob,
		},
		{
			name:    "negative days",
			jobs:    []JobSpec{{Name: "a", Kind: KindTempest, Days: -1}},
			wantErr: ErrInvalidJob,
		},
		{
			name:    "bad sort",
			jobs:    []JobSpec{{Name: "a", Kind: KindTempest, Sort: "random"}},
			wantErr: ErrInvalidJob,
		},
		{
			name:    "source and source_env",
			jobs:    []JobSpec{{Name: "a", Kind: KindDownload, Source: "x.xml", SourceEnv: "X"}},
			wantErr: ErrInvalidJob,
		},
		{
			name:    "manifest on download",
			jobs:    []JobSpec{{Name: "a", Kind: KindDownload, Manifest: "sites.txt"}},
			wantErr: ErrInvalidJob,
		},
		{
			name:    "duplicate name",
			jobs:    []JobSpec{{Name: "a", Kind: KindTempest}, {Name: "a", Kind: KindDownload}},
			wantErr: ErrDuplicateJob,
		},
		{
			name: "duplicate output",
			jobs: []JobSpec{
				{Name: "a", Kind: KindTempest, Output: "guide/epg.xml.gz"},
				{Name: "b", Kind: KindDownload, Output: "guide/./epg.xml.gz"},
			},
			wantErr: ErrDuplicateJob,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := (&JobFile{Jobs: tt.jobs}).Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestLoadJobFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jobs.toml")
	require.NoError(t, os.WriteFile(path, []byte(tomlJobs), 0o600))

	f, err := LoadJobFile(path)
	require.NoError(t, err)
	assert.Equal(t, "tempest", f.Jobs[0].Name)

	_, err = LoadJobFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
