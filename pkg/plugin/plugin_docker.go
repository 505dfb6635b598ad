package plugin

import (
	"regexp"
	"strings"
)

var (
	// Classic builder ("Step 2/3 : RUN ...") and BuildKit ("[2/3] RUN ...").
	dockerStepRe  = regexp.MustCompile(`(?m)^(?:Step\s+(\d+)/(\d+)\s*:|#\d+\s+\[(?:[^\]\s]+\s+)?(\d+)/(\d+)\]|\s*\[(?:[^\]\s]+\s+)?(\d+)/(\d+)\])`)
	dockerBuiltRe = regexp.MustCompile(`(?m)(?:Successfully built|writing image sha256:)\s*(\S+)`)
	dockerTagRe   = regexp.MustCompile(`(?m)(?:Successfully tagged|naming to)\s+(\S+)`)
)

var dockerFailures = []Rule{
	{
		Match:    all(failed, outputHas("Cannot connect to the Docker daemon", "docker daemon running")),
		Text:     "Docker daemon is not reachable.",
		NextStep: "Start Docker and check that your user can access the daemon socket.",
	},
	{
		Match:    all(failed, outputMatches(dockerStepRe)),
		Text:     "Docker build failed.",
		Message:  dockerStepMessage,
		NextStep: "Inspect the RUN instruction for that step and run it manually to reproduce.",
	},
	{
		Match:    failed,
		Text:     "docker command failed.",
		NextStep: "Run again with --full to review the full log.",
	},
}

// Docker summarizes docker builds and failures.
type Docker struct {
	command
}

// NewDocker creates the docker plugin.
func NewDocker() *Docker {
	return &Docker{command{name: "docker"}}
}

// Summarize implements Plugin.
func (p *Docker) Summarize(ctx *Context) *Summary {
	s := &Summary{}
	if classify(s, dockerFailures, ctx) {
		return s
	}

	if ctx.Subcommand() != "build" {
		return s
	}
	output := ctx.Stdout + "\n" + ctx.Stderr
	if m := dockerTagRe.FindStringSubmatch(output); m != nil {
		s.Result = "Built image " + m[1] + "."
	} else if m := dockerBuiltRe.FindStringSubmatch(output); m != nil {
		s.Result = "Built image " + shortID(m[1]) + "."
	}
	return s
}

// dockerStepMessage names the last build step seen before the failure.
func dockerStepMessage(ctx *Context) string {
	output := ctx.Stdout + "\n" + ctx.Stderr
	matches := dockerStepRe.FindAllStringSubmatch(output, -1)
	if len(matches) == 0 {
		return ""
	}
	last := matches[len(matches)-1]
	for i := 1; i+1 < len(last); i += 2 {
		if last[i] != "" {
			return "Docker build failed at step " + last[i] + "/" + last[i+1] + "."
		}
	}
	return ""
}

func shortID(id string) string {
	id = strings.TrimPrefix(id, "sha256:")
	if len(id) > 12 {
		return id[:12]
	}
	return id
}
