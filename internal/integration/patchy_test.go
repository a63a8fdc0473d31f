package integration

import (
	"testing"
)

const baseConfig = `repo = "owner/repo"
remote-branch = "main"
local-branch = "main"
`

func TestRun(t *testing.T) {
	binaryPath := getPatchyBinary(t)

	t.Run("rebuilds the local branch from pull requests", func(t *testing.T) {
		sh := NewTestShell(t, binaryPath)
		sh.PullRequest(1, "feature-a", "a.txt", "a\n").
			PullRequest(2, "feature-b", "b.txt", "b\n").
			Config(baseConfig + `pull-requests = ["1", "#2"]` + "\n")

		sh.Log("Running patchy with --yes...")
		sh.Run("run --yes").
			OutputContains("Merged pull request").
			OutputContains("Success!")

		sh.OnBranch("main").
			HasBranches("main").
			FileEquals("a.txt", "a\n").
			FileEquals("b.txt", "b\n").
			FileEquals(".patchy/config.toml", baseConfig+`pull-requests = ["1", "#2"]`+"\n").
			HasCommits("main",
				"patchy: Restore configuration files",
				"patchy: Merge branch feature-b of "+sh.Scene().UpstreamURL("owner/repo"),
				"patchy: Merge branch feature-a of "+sh.Scene().UpstreamURL("owner/repo"),
				"upstream: initial",
			)
	})

	t.Run("without a terminal the overwrite is declined", func(t *testing.T) {
		sh := NewTestShell(t, binaryPath)
		sh.Config(baseConfig)

		sh.RunExpectError("run").
			OutputContains("git branch --move --force").
			OutputContains("confirmation declined")
	})

	t.Run("a missing config file is reported", func(t *testing.T) {
		sh := NewTestShell(t, binaryPath)
		sh.RunExpectError("run --yes").OutputContains(".patchy/config.toml")
	})

	t.Run("verbose output traces git", func(t *testing.T) {
		sh := NewTestShell(t, binaryPath)
		sh.Config(baseConfig)
		sh.Run("run --yes --verbose").OutputContains("--verbose: git fetch")
	})
}

func TestInit(t *testing.T) {
	binaryPath := getPatchyBinary(t)

	sh := NewTestShell(t, binaryPath)
	sh.Run("init").OutputContains("Created config file")
	sh.RunExpectError("init").OutputContains("--force")
	sh.Run("init --force").OutputContains("Created config file")
}

func TestPrFetch(t *testing.T) {
	binaryPath := getPatchyBinary(t)

	t.Run("per pull request branch names", func(t *testing.T) {
		sh := NewTestShell(t, binaryPath)
		sh.PullRequest(1, "feature-a", "a.txt", "a\n").
			PullRequest(2, "feature-b", "b.txt", "b\n")

		sh.Run("pr-fetch 1 -b=first #2 --repo-name=owner/repo --checkout").
			OutputContains("available at branch")

		sh.HasBranches("main", "first", "2/feature-b").
			OnBranch("first").
			FileEquals("a.txt", "a\n")
	})

	t.Run("unknown flags are rejected", func(t *testing.T) {
		sh := NewTestShell(t, binaryPath)
		sh.RunExpectError("pr-fetch 1 --bogus -r=owner/repo").OutputContains("--bogus")
	})

	t.Run("help is printed", func(t *testing.T) {
		sh := NewTestShell(t, binaryPath)
		sh.Run("pr-fetch --help").OutputContains("--branch-name=")
	})
}

func TestGenPatch(t *testing.T) {
	binaryPath := getPatchyBinary(t)

	sh := NewTestShell(t, binaryPath)
	sh.WriteFile("fix.txt", "fix\n").
		Git("add fix.txt").
		Git("commit -m 'Fix typo in docs'")

	sh.Run("gen-patch HEAD -n=my-fix HEAD").
		OutputContains("my-fix.patch").
		OutputContains("fix_typo_in_docs.patch")
}
