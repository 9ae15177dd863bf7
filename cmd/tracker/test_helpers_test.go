package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

// execute runs the root command in-process against a file store rooted at dataDir and
// returns stdout and stderr
func execute(t *testing.T, dataDir string, args ...string) (string, string, error) {
	t.Helper()
	resetFlags(rootCmd)
	cfgFile = ""

	stdout, stderr := new(bytes.Buffer), new(bytes.Buffer)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.SetIn(bytes.NewReader(nil))
	rootCmd.SetArgs(append([]string{"--store-driver", "file", "--store-path", dataDir}, args...))

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

// resetFlags restores every flag to its default so commands do not leak state between runs
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func decode[T any](t *testing.T, data string) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal([]byte(data), &v), data)
	return v
}

const lifecycleDescription = `About the role
You will own our email and CRM programs end to end.

Requirements:
- 5+ years of lifecycle or CRM marketing experience
- Hands-on experience with HubSpot or Marketo
- Comfortable writing SQL to pull audience segments
- Bachelor's degree in Marketing or related field
- Must be authorized to work in the US

Nice to have:
- Experience with Looker dashboards
- Background in B2B SaaS

Benefits:
- Health, dental and vision insurance
- 401(k) match
`

func lifecycleJobJSON(t *testing.T, id string) string {
	t.Helper()
	body, err := json.Marshal(map[string]any{
		"id":              id,
		"title":           "Senior Lifecycle Marketing Manager",
		"company":         "Initech",
		"remote":          true,
		"job_description": lifecycleDescription,
		"comp_max":        170000,
	})
	require.NoError(t, err)
	return string(body)
}

const lifecycleProfileJSON = `{
  "target_roles": ["Lifecycle Marketing Manager"],
  "comp_floor": 120000,
  "comp_target": 160000,
  "required_benefits": ["401k"],
  "domain_keywords": ["crm"],
  "location_preferences": {"remote_only": true},
  "hard_filters": {},
  "scoring_policy": {}
}`

const lifecycleClaimsJSON = `[
  {"id": "exp1", "type": "Experience", "role": "Growth Lead", "company": "Acme", "start_date": "2016-01", "end_date": "Present"},
  {"id": "s1", "type": "Skill", "text": "Lifecycle and CRM marketing programs", "experience_id": "exp1"},
  {"id": "t1", "type": "Tool", "text": "SQL", "experience_id": "exp1"},
  {"id": "t2", "type": "Tool", "text": "HubSpot", "experience_id": "exp1"}
]`

const parsedClaimsJSON = `[
  {"company": "Acme", "role": "Growth Lead", "start_date": "2021-01", "text": "Led team; Grew revenue 30%"}
]`
