package podkit

import (
	"fmt"
	"os"
	"strings"

	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffval"

	"github.com/podkit/podkit/buildinfo"
)

// Identity is the static, environment-derived identity of this instance,
// served verbatim at /info. In a cluster the pod fields come from the
// downward API; everything is optional and defaults to something sensible for
// local runs.
type Identity struct {
	PodName        string `json:"hostname"`
	PodIP          string `json:"pod_ip"`
	NodeName       string `json:"node_name"`
	Namespace      string `json:"namespace"`
	ServiceAccount string `json:"service_account"`
	Version        string `json:"app_version"`
	BuildDate      string `json:"build_date"`
	GitCommit      string `json:"git_commit"`
}

// Config is read once at startup from flags and APP_-prefixed environment
// variables.
type Config struct {
	Name        string
	ListenAddr  string
	Debug       bool
	Environment string
	LogLevel    string
	LogFormat   string
	Identity
}

// LoadConfig parses args (usually os.Args[1:]) plus the environment. name is
// the application name used in logs and the /metrics document.
func LoadConfig(name string, args []string) (*Config, error) {
	hostname, _ := os.Hostname()
	version := buildinfo.Version
	if version == "" {
		version = "1.0.0"
	}
	config := &Config{
		Name: name,
		Identity: Identity{
			BuildDate: orUnknown(buildinfo.BuildDate),
			GitCommit: orUnknown(buildinfo.Commit),
		},
	}
	flags := ff.NewFlags(name)
	flags.AddFlag(ff.CoreFlagConfig{
		LongName:    "listen-addr",
		Placeholder: "host:port",
		Usage:       "address to serve HTTP on",
		Value:       &ffval.String{Pointer: &config.ListenAddr, Default: ":8080"},
	})
	flags.AddFlag(ff.CoreFlagConfig{
		LongName: "debug",
		Usage:    "enable debug behavior, including the /simulate-error route",
		Value:    &ffval.Bool{Pointer: &config.Debug},
	})
	flags.AddFlag(ff.CoreFlagConfig{
		LongName:    "environment",
		Placeholder: "name",
		Usage:       "deployment environment name",
		Value:       &ffval.String{Pointer: &config.Environment, Default: "production"},
	})
	flags.AddFlag(ff.CoreFlagConfig{
		LongName:    "version",
		Placeholder: "semver",
		Usage:       "version string reported by /health, /info and /metrics",
		Value:       &ffval.String{Pointer: &config.Version, Default: version},
	})
	flags.AddFlag(ff.CoreFlagConfig{
		LongName:    "pod-name",
		Placeholder: "name",
		Usage:       "pod name for identity reporting",
		Value:       &ffval.String{Pointer: &config.PodName, Default: orUnknown(hostname)},
	})
	flags.AddFlag(ff.CoreFlagConfig{
		LongName:    "pod-ip",
		Placeholder: "addr",
		Usage:       "pod IP for identity reporting",
		Value:       &ffval.String{Pointer: &config.PodIP, Default: "unknown"},
	})
	flags.AddFlag(ff.CoreFlagConfig{
		LongName:    "node-name",
		Placeholder: "name",
		Usage:       "node this pod is scheduled on",
		Value:       &ffval.String{Pointer: &config.NodeName, Default: "unknown"},
	})
	flags.AddFlag(ff.CoreFlagConfig{
		LongName:    "namespace",
		Placeholder: "name",
		Usage:       "namespace this pod runs in",
		Value:       &ffval.String{Pointer: &config.Namespace, Default: "unknown"},
	})
	flags.AddFlag(ff.CoreFlagConfig{
		LongName:    "service-account",
		Placeholder: "name",
		Usage:       "service account this pod runs as",
		Value:       &ffval.String{Pointer: &config.ServiceAccount, Default: "unknown"},
	})
	flags.AddFlag(ff.CoreFlagConfig{
		LongName:    "log-level",
		Placeholder: "debug|info|warn|error",
		Usage:       "logging level",
		Value: &ffval.String{
			ParseFunc: oneOf("log level", "debug", "info", "warn", "error"),
			Pointer:   &config.LogLevel,
			Default:   "info",
		},
	})
	flags.AddFlag(ff.CoreFlagConfig{
		LongName:    "log-format",
		Placeholder: "json|human|auto",
		Usage:       `logging format - "auto" picks 'human' on a tty, 'json' otherwise`,
		Value: &ffval.String{
			ParseFunc: oneOf("log format", "json", "human", "auto"),
			Pointer:   &config.LogFormat,
			Default:   "auto",
		},
	})
	err := ff.Parse(flags, args,
		ff.WithEnvVars(),
		ff.WithEnvVarPrefix("APP"),
	)
	if err != nil {
		return nil, err
	}
	return config, nil
}

func oneOf(what string, valid ...string) func(string) (string, error) {
	return func(s string) (string, error) {
		s = strings.ToLower(s)
		for _, v := range valid {
			if s == v {
				return s, nil
			}
		}
		return "", fmt.Errorf("invalid %s %q", what, s)
	}
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
