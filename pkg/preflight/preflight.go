// Package preflight validates the runtime environment before any mutating
// command runs. Every check executes unconditionally so a single invocation
// reports every failure at once; nothing here mutates the filesystem.
package preflight

import (
	"os"
	"os/exec"
	"regexp"
	"strconv"

	"github.com/arthur-debert/dotbash/pkg/logging"
	"github.com/arthur-debert/dotbash/pkg/paths"
)

// minBashMajor is the lowest bash major version the managed dotfiles
// support; associative arrays and other constructs they use appeared in 4.x.
const minBashMajor = 4

// digestTools are external digest utilities the installed shell helpers use;
// the first one found enables checksum-gated updates.
var digestTools = []string{"sha256sum", "shasum"}

// Problem is a single failed check with a remediation hint
type Problem struct {
	Check  string
	Detail string
	Hint   string
}

// Result collects every hard failure and advisory warning from one run,
// plus the digest capability consumed by the checksum comparator.
type Result struct {
	Problems      []Problem
	Warnings      []Problem
	DigestCapable bool
}

// Failed reports whether any hard failure occurred
func (r Result) Failed() bool {
	return len(r.Problems) > 0
}

// Run executes all environment checks against p
func Run(p paths.Paths) Result {
	logger := logging.GetLogger("preflight")

	var r Result

	if prob := checkBash(); prob != nil {
		r.Problems = append(r.Problems, *prob)
	}
	if prob := checkHome(p); prob != nil {
		r.Problems = append(r.Problems, *prob)
	}
	if prob := checkCollabDir(p); prob != nil {
		r.Problems = append(r.Problems, *prob)
	}
	if prob := checkCollabEntry(p); prob != nil {
		r.Problems = append(r.Problems, *prob)
	}
	if prob := checkPayload(p); prob != nil {
		r.Problems = append(r.Problems, *prob)
	}

	tool, capable := detectDigestTool()
	r.DigestCapable = capable
	if !capable {
		r.Warnings = append(r.Warnings, Problem{
			Check:  "checksum",
			Detail: "no checksum utility found (sha256sum or shasum)",
			Hint:   "updates will re-copy every file instead of skipping unchanged ones",
		})
	}

	logger.Debug().
		Int("problems", len(r.Problems)).
		Int("warnings", len(r.Warnings)).
		Str("digestTool", tool).
		Msg("preflight finished")

	return r
}

var bashVersionRe = regexp.MustCompile(`version (\d+)\.`)

func checkBash() *Problem {
	path, err := exec.LookPath("bash")
	if err != nil {
		return &Problem{
			Check:  "bash",
			Detail: "bash not found on PATH",
			Hint:   "install bash " + strconv.Itoa(minBashMajor) + " or newer",
		}
	}

	out, err := exec.Command(path, "--version").Output()
	if err != nil {
		return &Problem{
			Check:  "bash",
			Detail: "could not determine bash version",
			Hint:   "run 'bash --version' to check your installation",
		}
	}

	m := bashVersionRe.FindSubmatch(out)
	if m == nil {
		return &Problem{
			Check:  "bash",
			Detail: "unrecognized 'bash --version' output",
			Hint:   "ensure PATH points at GNU bash, not a fork or legacy shell",
		}
	}

	major, _ := strconv.Atoi(string(m[1]))
	if major < minBashMajor {
		return &Problem{
			Check:  "bash",
			Detail: "bash " + string(m[1]) + " is too old",
			Hint:   "install bash " + strconv.Itoa(minBashMajor) + " or newer",
		}
	}

	return nil
}

func checkHome(p paths.Paths) *Problem {
	home := p.HomeDir()
	if home == "" {
		return &Problem{
			Check:  "home",
			Detail: "HOME is not set",
			Hint:   "export HOME pointing at your user profile directory",
		}
	}
	if info, err := os.Stat(home); err != nil || !info.IsDir() {
		return &Problem{
			Check:  "home",
			Detail: "HOME does not refer to an existing directory: " + home,
			Hint:   "export HOME pointing at your user profile directory",
		}
	}
	return nil
}

func checkCollabDir(p paths.Paths) *Problem {
	dir := p.CollabDir()
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return &Problem{
			Check:  "common-core",
			Detail: "common-core library directory not found: " + dir,
			Hint:   "clone the common-core repository there, or set " + paths.EnvCommonCore,
		}
	}
	return nil
}

func checkCollabEntry(p paths.Paths) *Problem {
	entry := p.CollabEntryPath()
	if info, err := os.Stat(entry); err != nil || info.IsDir() {
		return &Problem{
			Check:  "common-core",
			Detail: paths.CollabEntryName + " not found at " + entry,
			Hint:   "update your common-core checkout; the entry point is required",
		}
	}
	return nil
}

func checkPayload(p paths.Paths) *Problem {
	root := p.DotfilesRoot()
	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		return &Problem{
			Check:  "payload",
			Detail: "dotfiles payload directory not found: " + root,
			Hint:   "set " + paths.EnvDotfilesRoot + " or run dotbash from your dotfiles checkout",
		}
	}
	return nil
}

func detectDigestTool() (string, bool) {
	for _, tool := range digestTools {
		if _, err := exec.LookPath(tool); err == nil {
			return tool, true
		}
	}
	return "", false
}
