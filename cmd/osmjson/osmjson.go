package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/osmwrangle/osmjson/action"
	"github.com/osmwrangle/osmjson/config"
	"github.com/osmwrangle/osmjson/loader"
	"github.com/osmwrangle/osmjson/pg"
	"github.com/osmwrangle/osmjson/text"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const (
	cmd     = "osmjson"
	version = "1.0.0"
)

var cmdError error

func main() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	_ = godotenv.Load()

	app := &cobra.Command{
		Use:           cmd,
		Short:         cmd + " converts OpenStreetMap XML to JSON documents",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(c *cobra.Command, args []string) {
			if logp := c.Flag("log"); logp != nil {
				if logPath := logp.Value.String(); logPath != "" {
					if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
						fmt.Fprintln(os.Stderr, "mkdir", logPath, "failed:", err)
						return
					}
					log.SetOutput(&lumberjack.Logger{
						Filename:   logPath,
						MaxSize:    10,
						MaxBackups: 10,
						MaxAge:     15,
					})
				}
			}
		},
	}
	defineAppFlags(app)
	defineCommands(app)
	if err := app.Execute(); err != nil {
		reportError(err)
	}
	if cmdError != nil {
		os.Exit(1)
	}
}

func defineAppFlags(app *cobra.Command) {
	f := app.PersistentFlags()
	f.String("log", os.Getenv("OSMJSON_LOG"), "osmjson log file path")
	f.String("config", os.Getenv("OSMJSON_CONFIG"), "YAML config file overriding the built-in defaults")
}

func reportError(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		cmdError = err
	}
}

func fatal(msg string) {
	fmt.Fprintln(os.Stderr, msg)
	os.Exit(1)
}

func convertFlags(f *pflag.FlagSet) {
	f.Bool("pretty", false, "indent each JSON document")
	f.String("postcode-prefix", "", "drop addr:postcode values without this prefix (empty keeps all)")
	f.String("on-error", "", "bad element policy: abort or skip")
	f.Bool("overwrite-reserved", false, "let tags overwrite reserved fields such as id and pos")
	f.Bool("word-boundaries", false, "match street name tables on whole words only")
	f.StringP("output", "o", "", "output file (default <input>.json)")
}

func dbFlags(f *pflag.FlagSet) {
	env := pg.SpecFromEnv()
	f.String("db", text.FirstNotEmpty(env.Database, "osm"), "database name")
	f.String("user", text.FirstNotEmpty(env.User, "osm"), "database user")
	f.String("password", env.Password, "database password")
	f.String("host", text.FirstNotEmpty(env.Host, "localhost"), "postgres database host")
	f.Int("port", env.Port, "postgres database port")
	f.String("sslmode", env.SSLMode, "postgres sslmode (default disable)")
	f.String("table", loader.DefaultTable, "document table")
	f.Bool("truncate", false, "empty the table before loading")
}

func setFlags(flagSetter func(*pflag.FlagSet), cmd *cobra.Command) *cobra.Command {
	flagSetter(cmd.Flags())
	return cmd
}

func boolFlag(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		fatal("bad boolean value for " + name + ": " + err.Error())
	}
	return val
}

func stringFlag(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		fatal("bad string value for " + name + ": " + err.Error())
	}
	return val
}

func intFlag(cmd *cobra.Command, name string) int {
	val, err := cmd.Flags().GetInt(name)
	if err != nil {
		fatal("bad int value for " + name + ": " + err.Error())
	}
	return val
}

// changedBool and changedString return nil unless the flag was given, so
// that unset flags leave the configured value alone.
func changedBool(c *cobra.Command, name string) *bool {
	if f := c.Flags().Lookup(name); f == nil || !f.Changed {
		return nil
	}
	val := boolFlag(c, name)
	return &val
}

func changedString(c *cobra.Command, name string) *string {
	if f := c.Flags().Lookup(name); f == nil || !f.Changed {
		return nil
	}
	val := stringFlag(c, name)
	return &val
}

func configLoader(c *cobra.Command) action.ConfigLoader {
	return func() (config.Config, error) {
		cfg, err := config.Load(stringFlag(c, "config"))
		if err != nil {
			return cfg, err
		}
		return cfg.Apply(config.Overrides{
			Pretty:            changedBool(c, "pretty"),
			PostcodePrefix:    changedString(c, "postcode-prefix"),
			OnError:           changedString(c, "on-error"),
			OverwriteReserved: changedBool(c, "overwrite-reserved"),
			WordBoundaries:    changedBool(c, "word-boundaries"),
		})
	}
}

func defineCommands(app *cobra.Command) {
	app.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show " + cmd + " version",
		Run: func(*cobra.Command, []string) {
			fmt.Println(cmd, version)
		},
	})

	dbSpec := func(c *cobra.Command) pg.ConnSpec {
		return pg.ConnSpec{
			Database: stringFlag(c, "db"),
			User:     stringFlag(c, "user"),
			Password: stringFlag(c, "password"),
			Host:     stringFlag(c, "host"),
			Port:     intFlag(c, "port"),
			SSLMode:  stringFlag(c, "sslmode"),
		}
	}

	app.AddCommand(&cobra.Command{
		Use:   "defaults",
		Short: "print the built-in configuration, as a template for --config",
		Run: func(*cobra.Command, []string) {
			reportError(action.PrintDefaults(os.Stdout))
		},
	})

	app.AddCommand(setFlags(convertFlags, &cobra.Command{
		Use:   "convert <input.osm>",
		Short: "convert an OSM XML file to JSON documents",
		Args:  cobra.ExactArgs(1),
		Run: func(c *cobra.Command, args []string) {
			cfg, err := configLoader(c)()
			if err != nil {
				reportError(err)
				return
			}
			_, err = action.Convert(cfg, args[0], stringFlag(c, "output"))
			reportError(err)
		},
	}))

	app.AddCommand(setFlags(convertFlags, &cobra.Command{
		Use:   "watch <input.osm>",
		Short: "convert, then convert again whenever the input or config file changes",
		Args:  cobra.ExactArgs(1),
		Run: func(c *cobra.Command, args []string) {
			stop := make(chan os.Signal, 1)
			signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
			defer signal.Stop(stop)
			reportError(action.Watch(args[0], stringFlag(c, "output"),
				stringFlag(c, "config"), configLoader(c), stop))
		},
	}))

	app.AddCommand(setFlags(dbFlags, &cobra.Command{
		Use:   "load <file.json>...",
		Short: "copy JSON documents into a PostgreSQL table",
		Args:  cobra.MinimumNArgs(1),
		Run: func(c *cobra.Command, args []string) {
			reportError(action.Load(dbSpec(c), stringFlag(c, "table"),
				boolFlag(c, "truncate"), args))
		},
	}))

	app.AddCommand(setFlags(func(f *pflag.FlagSet) {
		f.Bool("word-boundaries", false, "match street name tables on whole words only")
	}, &cobra.Command{
		Use:   "normalize <name>...",
		Short: "print street names as the converter normalizes them",
		Args:  cobra.MinimumNArgs(1),
		Run: func(c *cobra.Command, args []string) {
			cfg, err := configLoader(c)()
			if err != nil {
				reportError(err)
				return
			}
			reportError(action.NormalizeNames(os.Stdout, cfg, args))
		},
	}))

	app.AddCommand(setFlags(func(f *pflag.FlagSet) {
		f.Bool("word-boundaries", false, "match street name tables on whole words only")
	}, &cobra.Command{
		Use:   "tables",
		Short: "print the street name substitution tables in the order they apply",
		Run: func(c *cobra.Command, args []string) {
			cfg, err := configLoader(c)()
			if err != nil {
				reportError(err)
				return
			}
			reportError(action.PrintTables(os.Stdout, cfg))
		},
	}))
}
