package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/icza/memsession"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "memsess",
	Short:        "Manage sessions stored in memcached",
	Long:         `Get, set, destroy and clear sessions stored by memsession, or serve a session demo.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "YAML file with store options (hosts, prefix, timeout, maxIdleConns)")
	pf.StringSlice("hosts", nil, "memcached servers, overrides the config file")
	pf.String("prefix", "", "session key prefix, overrides the config file")
	pf.String("redis", "", "address of a Redis server to use instead of memcached")
	pf.String("log-level", "info", "log level: debug, info, warn or error")
}

// newLogger creates the command logger on stderr, keeping stdout for command output.
func newLogger(cmd *cobra.Command) (*slog.Logger, error) {
	levelName, _ := cmd.Flags().GetString("log-level")

	var level slog.Level
	if err := level.UnmarshalText([]byte(levelName)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", levelName, err)
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == "error" {
				a.Key = "err"
			}
			return a
		},
	})), nil
}

// newStore builds the session store from the config file and the flags.
func newStore(cmd *cobra.Command, metrics *memsession.Metrics) (*memsession.MemcacheStore, error) {
	flags := cmd.Flags()

	o := &memsession.MemcacheStoreOptions{}
	if path, _ := flags.GetString("config"); path != "" {
		var err error
		if o, err = memsession.LoadOptions(path); err != nil {
			return nil, err
		}
	}
	if flags.Changed("hosts") {
		o.Hosts, _ = flags.GetStringSlice("hosts")
	}
	if flags.Changed("prefix") {
		o.Prefix, _ = flags.GetString("prefix")
	}
	if addr, _ := flags.GetString("redis"); addr != "" {
		o.Client = memsession.NewRedisClient(redis.NewClient(&redis.Options{Addr: addr}))
	}

	logger, err := newLogger(cmd)
	if err != nil {
		return nil, err
	}
	o.Logger = logger
	o.Metrics = metrics

	return memsession.NewMemcacheStoreOptions(o), nil
}
