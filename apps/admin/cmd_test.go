package main

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/masomo-web/apps"
	"github.com/trezcool/masomo-web/core"
	"github.com/trezcool/masomo-web/core/notice"
	"github.com/trezcool/masomo-web/services/submit"
	"github.com/trezcool/masomo-web/tests"
)

var (
	now = time.Date(2024, time.March, 5, 10, 0, 0, 0, time.UTC)

	testConf = &core.Config{
		Env:      "TEST",
		TestMode: true,
		AppName:  "Masomo",
		Timezone: "UTC",
		Site: core.SiteInfo{
			Name:          "Masomo",
			BaseURL:       "https://masomo.cd",
			Title:         "Masomo - School Management",
			TitleTemplate: "%s | Masomo",
			Description:   "Masomo brings schools together.",
		},
	}

	validTitle   = "Parents meeting"
	validDetails = "All parents are invited to the hall on Friday."
	validDate    = "2024-03-05"
)

func setup(t *testing.T) (*commandLine, *submitsvc.ConsoleSubmitter, *bytes.Buffer) {
	t.Helper()
	sub := submitsvc.NewConsoleSubmitterMock()
	out := new(bytes.Buffer)
	cli := newCommandLine(testConf, testutil.NopLogger{}, sub, strings.NewReader(""), out)
	cli.clock = testutil.FixedClock(now)
	return cli, sub, out
}

func writeNotice(t *testing.T, n notice.Notice) string {
	t.Helper()
	doc, err := notice.Marshal(n)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "notice.md")
	require.NoError(t, os.WriteFile(path, doc, 0o644))
	return path
}

// outputFields maps "label: value" lines of out.
func outputFields(out string) map[string]string {
	fields := make(map[string]string)
	for _, line := range strings.Split(out, "\n") {
		if label, value, ok := strings.Cut(line, ": "); ok {
			fields[strings.TrimSpace(label)] = strings.TrimSpace(value)
		}
	}
	return fields
}

type cliTest struct {
	name       string
	args       []string // without program name
	wantErr    error
	wantErrStr string
	wantOut    []string
}

func runCLITests(t *testing.T, tests []cliTest) {
	t.Helper()
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			cli, _, out := setup(t)
			err := cli.run(args)
			switch {
			case tt.wantErr != nil:
				if errors.Cause(err) != tt.wantErr {
					t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
				}
			case tt.wantErrStr != "":
				if err == nil || err.Error() != tt.wantErrStr {
					t.Errorf("cli.run() error = %v, wantErrStr %s", err, tt.wantErrStr)
				}
			case err != nil:
				t.Errorf("cli.run() unexpected error = %v", err)
			}
			for _, want := range tt.wantOut {
				if !strings.Contains(out.String(), want) {
					t.Errorf("cli.run() output = %q, want it to contain %q", out.String(), want)
				}
			}
		})
	}
}

func Test_commandLine_run(t *testing.T) {
	runCLITests(t, []cliTest{
		{name: "no command", wantErr: errHelp, wantOut: []string{"Usage:"}},
		{name: "no subcommand", args: []string{"notice"}, wantErr: errHelp},
		{name: "unknown command", args: []string{"lol", "create"}, wantErr: errHelp},
		{name: "unknown notice subcommand", args: []string{"notice", "lol"}, wantErr: errHelp},
		{name: "unknown date subcommand", args: []string{"date", "lol"}, wantErr: errHelp},
		{name: "unknown seo subcommand", args: []string{"seo", "lol"}, wantErr: errHelp},
		{name: "help flag", args: []string{"date", "info", "-h"}, wantErr: errHelp},
		{name: "unknown flag", args: []string{"date", "info", "-lol"}, wantErrStr: "flag provided but not defined: -lol"},
	})
}

func Test_commandLine_noticeCheck(t *testing.T) {
	runCLITests(t, []cliTest{
		{
			name:    "valid",
			args:    []string{"notice", "check", "-title", validTitle, "-details", validDetails, "-date", validDate},
			wantOut: []string{"valid notice"},
		},
		{
			name:       "invalid",
			args:       []string{"notice", "check", "-title", "abc", "-details", validDetails},
			wantErrStr: "invalid date: Date is required",
			wantOut: []string{
				"  date: Date is required\n  title: Title must be at least 5 characters\n",
			},
		},
		{
			name:       "blank title",
			args:       []string{"notice", "check", "-title", "      ", "-details", validDetails, "-date", validDate},
			wantErrStr: "invalid title: Title is required",
		},
	})
}

func Test_commandLine_noticeCreate(t *testing.T) {
	t.Run("invalid", func(t *testing.T) {
		cli, sub, out := setup(t)
		err := cli.run([]string{"admin", "notice", "create", "-title", "abc"})

		_, ok := errors.Cause(err).(*core.ValidationError)
		require.True(t, ok, "error = %v, want *core.ValidationError", err)
		assert.Contains(t, out.String(), "details: Details is required")
		assert.Contains(t, out.String(), "title: Title must be at least 5 characters")
		assert.Empty(t, sub.Submitted())
	})

	t.Run("valid", func(t *testing.T) {
		cli, sub, out := setup(t)
		err := cli.run([]string{"admin", "notice", "create", "-title", validTitle, "-details", validDetails, "-date", validDate})
		require.NoError(t, err)

		submitted := sub.Submitted()
		require.Len(t, submitted, 1)
		assert.Equal(t, validTitle, submitted[0].Title)
		assert.Equal(t, validDetails, submitted[0].Details)
		assert.Equal(t, validDate, submitted[0].Date)
		assert.Contains(t, out.String(), "notice created: "+submitted[0].ID.String())
	})

	t.Run("prompt", func(t *testing.T) {
		defer func(f func(int) bool) { isTerminalFunc = f }(isTerminalFunc)
		isTerminalFunc = func(int) bool { return true }

		cli, sub, out := setup(t)
		cli.inFd = 0
		cli.in = bufio.NewReader(strings.NewReader(validTitle + "\n" + validDetails + "\n"))

		err := cli.run([]string{"admin", "notice", "create", "-date", validDate})
		require.NoError(t, err)
		assert.Contains(t, out.String(), "title: ")
		assert.Contains(t, out.String(), "details: ")
		require.Len(t, sub.Submitted(), 1)
		assert.Equal(t, validTitle, sub.Submitted()[0].Title)
		assert.Equal(t, validDetails, sub.Submitted()[0].Details)
	})
}

func Test_commandLine_noticeEdit(t *testing.T) {
	orig := testutil.Notice(validTitle, validDetails, validDate)
	orig.CreatedAt = now.Add(-48 * time.Hour)
	orig.UpdatedAt = orig.CreatedAt

	t.Run("missing document", func(t *testing.T) {
		cli, _, _ := setup(t)
		assert.Equal(t, errHelp, cli.run([]string{"admin", "notice", "edit"}))
	})

	t.Run("unreadable document", func(t *testing.T) {
		cli, _, _ := setup(t)
		path := filepath.Join(t.TempDir(), "notice.md")
		require.NoError(t, os.WriteFile(path, []byte("no front-matter"), 0o644))

		err := cli.run([]string{"admin", "notice", "edit", "-from", path})
		argErr, ok := err.(*apps.ArgumentError)
		require.True(t, ok, "error = %v, want *apps.ArgumentError", err)
		assert.Equal(t, "from", argErr.Arg)
	})

	t.Run("no changes", func(t *testing.T) {
		cli, sub, out := setup(t)
		path := writeNotice(t, orig)

		require.NoError(t, cli.run([]string{"admin", "notice", "edit", "-from", path, "-title", validTitle}))
		assert.Equal(t, "no changes\n", out.String())
		assert.Empty(t, sub.Submitted())
	})

	t.Run("invalid change", func(t *testing.T) {
		cli, sub, out := setup(t)
		path := writeNotice(t, orig)

		err := cli.run([]string{"admin", "notice", "edit", "-from", path, "-details", "too short"})
		require.Error(t, err)
		assert.Contains(t, out.String(), "details: Details must be at least 20 characters")
		assert.Empty(t, sub.Submitted())
	})

	t.Run("save", func(t *testing.T) {
		cli, sub, out := setup(t)
		path := writeNotice(t, orig)

		err := cli.run([]string{"admin", "notice", "edit", "-from", path, "-title", "Parents meeting postponed", "-date", "2024-03-12", "-save"})
		require.NoError(t, err)
		assert.Contains(t, out.String(), "-title: "+validTitle)
		assert.Contains(t, out.String(), "+title: Parents meeting postponed")
		assert.Contains(t, out.String(), "notice updated: "+orig.ID.String())

		require.Len(t, sub.Submitted(), 1)
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		saved, err := notice.Unmarshal(data)
		require.NoError(t, err)
		assert.Equal(t, sub.Submitted()[0], saved)
		assert.Equal(t, orig.ID, saved.ID)
		assert.Equal(t, "Parents meeting postponed", saved.Title)
		assert.Equal(t, "2024-03-12", saved.Date)
		assert.Equal(t, validDetails, saved.Details)
		assert.True(t, saved.UpdatedAt.After(orig.UpdatedAt))
	})
}

func Test_commandLine_date(t *testing.T) {
	runCLITests(t, []cliTest{
		{name: "info: no date", args: []string{"date", "info"}, wantErrStr: "-date: a date is required"},
		{name: "info: invalid date", args: []string{"date", "info", "-date", "lol"}, wantErrStr: `-date: "lol" is not a valid date`},
		{name: "age", args: []string{"date", "age", "-birth", "2006-03-05"}, wantOut: []string{"18\n"}},
		{name: "age: birthday tomorrow", args: []string{"date", "age", "-birth", "2006-03-06"}, wantOut: []string{"17\n"}},
		{name: "age: invalid", args: []string{"date", "age", "-birth", "2006-13-45"}, wantErrStr: `-birth: "2006-13-45" is not a valid date`},
		{
			name:    "diff",
			args:    []string{"date", "diff", "-from", "2024-03-01", "-to", "2024-03-05T12:00:00Z"},
			wantOut: []string{"days:  4\n", "hours: 108\n"},
		},
		{name: "diff: missing to", args: []string{"date", "diff", "-from", "2024-03-01"}, wantErrStr: "-to: a date is required"},
		{name: "shift months with overflow", args: []string{"date", "shift", "-date", "2023-01-31", "-months", "1"}, wantOut: []string{"2023-03-03 (2023-03-03T00:00:00Z)"}},
		{name: "shift back", args: []string{"date", "shift", "-date", "2024-03-01", "-days", "-1"}, wantOut: []string{"2024-02-29"}},
		{name: "shift both", args: []string{"date", "shift", "-date", "2024-01-15", "-months", "-1", "-days", "3"}, wantOut: []string{"2023-12-18"}},
	})
}

func Test_commandLine_dateInfo(t *testing.T) {
	tests := []struct {
		name string
		date string
	}{
		{name: "date", date: validDate},
		{name: "unix milliseconds", date: "1709596800000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cli, _, out := setup(t)
			require.NoError(t, cli.run([]string{"admin", "date", "info", "-date", tt.date}))

			assert.Equal(t, map[string]string{
				"date":        "2024-03-05",
				"input":       "2024-03-05",
				"day":         "Tuesday (Tue)",
				"month":       "March (Mar)",
				"today":       "true",
				"yesterday":   "false",
				"past":        "true",
				"future":      "false",
				"day range":   "2024-03-05T00:00:00Z .. 2024-03-05T23:59:59Z",
				"week":        "2024-03-03T00:00:00Z .. 2024-03-09T00:00:00Z",
				"month range": "2024-03-01T00:00:00Z .. 2024-03-31T00:00:00Z",
				"this month":  "true",
			}, outputFields(out.String()))
		})
	}
}

func Test_commandLine_seo(t *testing.T) {
	n := testutil.Notice("Sports day", "<p>Bring your <b>kit</b> and water bottle.</p>", validDate)
	path := writeNotice(t, n)

	runCLITests(t, []cliTest{
		{
			name: "page",
			args: []string{"seo", "page", "-title", "About", "-path", "/about", "-noindex"},
			wantOut: []string{
				"<title>About | Masomo</title>",
				`<link rel="canonical" href="https://masomo.cd/about">`,
				`<meta name="robots" content="noindex, nofollow">`,
			},
		},
		{
			name: "default page",
			args: []string{"seo", "page"},
			wantOut: []string{
				"<title>Masomo - School Management</title>",
				`<meta name="description" content="Masomo brings schools together.">`,
			},
		},
		{name: "notice: missing document", args: []string{"seo", "notice"}, wantErr: errHelp},
		{
			name: "notice",
			args: []string{"seo", "notice", "-from", path},
			wantOut: []string{
				"<title>Sports day | Masomo</title>",
				`<meta name="description" content="Bring your kit and water bottle.">`,
				`<link rel="canonical" href="https://masomo.cd/notices/` + n.ID.String() + `">`,
				`<meta property="og:type" content="article">`,
			},
		},
		{
			name:    "org",
			args:    []string{"seo", "org"},
			wantOut: []string{`"@type": "EducationalOrganization"`, `"url": "https://masomo.cd/"`},
		},
	})
}

func Test_commandLine_noticeEditKeepsDetails(t *testing.T) {
	details := "  Bring your kit and a water bottle.\n  Races start at 9.\n"
	orig := testutil.Notice("Sports day", details, validDate)
	cli, _, _ := setup(t)
	path := writeNotice(t, orig)

	require.NoError(t, cli.run([]string{"admin", "notice", "edit", "-from", path, "-title", "Sports day moved", "-save"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	saved, err := notice.Unmarshal(data)
	require.NoError(t, err)
	assert.Equal(t, "Sports day moved", saved.Title)
	assert.Equal(t, details, saved.Details)
}
