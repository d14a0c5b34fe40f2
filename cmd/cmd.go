// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// Flags carry parse state, so every command gets its own instances.

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   "config.toml",
	}
}

func jsonFlag() cli.Flag {
	return &cli.BoolFlag{Name: "json", Usage: "Output raw JSON"}
}

func prettyFlag() cli.Flag {
	return &cli.BoolFlag{Name: "pretty", Usage: "Pretty-print JSON output", Value: true}
}

func pathArg() []cli.Argument {
	return []cli.Argument{&cli.StringArg{Name: "path"}}
}

func dataFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "data",
		Aliases:  []string{"d"},
		Usage:    "JSON body to send",
		Required: true,
	}
}

// attendeeFlags are shared by "people add" and "people edit".
func attendeeFlags(withDefaults bool) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "name", Usage: "Short name shown on the card"},
		&cli.StringFlag{Name: "full-name", Usage: "Full name"},
		&cli.IntFlag{Name: "age", Usage: "Age in years"},
		&cli.StringFlag{Name: "photo", Usage: "Photo URL"},
		&cli.BoolFlag{Name: "host", Usage: "Mark as a host of the party"},
		&cli.BoolFlag{Name: "present", Usage: "Mark as present", Value: withDefaults},
		&cli.BoolFlag{Name: "invited", Usage: "Mark as invited", Value: withDefaults},
	}
}

// partiesCommand handles party operations against the collection service
func partiesCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "parties",
		Aliases: []string{"festas", "party"},
		Usage:   "List and manage parties",
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List every party",
				Flags:  []cli.Flag{jsonFlag(), prettyFlag()},
				Action: r.PartiesList,
			},
			{
				Name:  "create",
				Usage: "Create a party dated now",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "name"},
				},
				Action: r.PartiesCreate,
			},
			{
				Name:  "rename",
				Usage: "Rename a party, re-stamping its date with now",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "name"},
				},
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "id", Usage: "Party ID", Required: true},
				},
				Action: r.PartiesRename,
			},
			{
				Name:  "delete",
				Usage: "Delete a party",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "id", Usage: "Party ID", Required: true},
				},
				Action: r.PartiesDelete,
			},
		},
	}
}

// peopleCommand handles attendee operations against the collection service
func peopleCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "people",
		Aliases: []string{"pessoas", "attendees"},
		Usage:   "List and manage the attendees of a party",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List the attendees of a party",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "party", Usage: "Party ID", Required: true},
					jsonFlag(),
					prettyFlag(),
				},
				Action: r.PeopleList,
			},
			{
				Name:  "add",
				Usage: "Add an attendee to a party",
				Flags: append([]cli.Flag{
					&cli.IntFlag{Name: "party", Usage: "Party ID", Required: true},
				}, attendeeFlags(true)...),
				Action: r.PeopleAdd,
			},
			{
				Name:  "edit",
				Usage: "Change the fields given as flags, keeping the rest",
				Flags: append([]cli.Flag{
					&cli.IntFlag{Name: "party", Usage: "Party ID the attendee belongs to", Required: true},
					&cli.IntFlag{Name: "id", Usage: "Attendee ID", Required: true},
				}, attendeeFlags(false)...),
				Action: r.PeopleEdit,
			},
			{
				Name:  "delete",
				Usage: "Delete an attendee",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "id", Usage: "Attendee ID", Required: true},
				},
				Action: r.PeopleDelete,
			},
		},
	}
}

// exportCommand exports guest lists to files
func exportCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export the guest list of every party (or the given ones) with a manifest",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Export format: json, csv, markdown or txt",
				Value:   "json",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output directory (default: festa_export_{epoch})",
			},
			&cli.IntSliceFlag{
				Name:  "party",
				Usage: "Party ID to export, repeatable",
			},
			&cli.IntFlag{
				Name:  "workers",
				Usage: "Concurrent writers",
				Value: 5,
			},
			&cli.FloatFlag{
				Name:  "rate",
				Usage: "Attendee fetches per second",
				Value: 5,
			},
		},
		Action: r.Export,
	}
}

// apiCommand handles direct API calls to the collection service
func apiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "api",
		Usage: "Direct API calls to the collection service",
		Commands: []*cli.Command{
			{
				Name:      "get",
				Usage:     "Direct GET, prints the response",
				Arguments: pathArg(),
				Flags:     []cli.Flag{prettyFlag()},
				Action:    r.APIGet,
			},
			{
				Name:      "post",
				Usage:     "Direct POST with JSON body",
				Arguments: pathArg(),
				Flags:     []cli.Flag{dataFlag(), prettyFlag()},
				Action:    r.APIPost,
			},
			{
				Name:      "patch",
				Usage:     "Direct PATCH with JSON body",
				Arguments: pathArg(),
				Flags:     []cli.Flag{dataFlag(), prettyFlag()},
				Action:    r.APIPatch,
			},
			{
				Name:      "put",
				Usage:     "Direct PUT with JSON body",
				Arguments: pathArg(),
				Flags:     []cli.Flag{dataFlag(), prettyFlag()},
				Action:    r.APIPut,
			},
			{
				Name:      "delete",
				Usage:     "Direct DELETE",
				Arguments: pathArg(),
				Flags:     []cli.Flag{prettyFlag()},
				Action:    r.APIDelete,
			},
		},
	}
}

// setupCommand handles setup operations for configuration and the fixture database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:   "config",
				Usage:  "Write the default configuration file",
				Flags:  []cli.Flag{configFlag()},
				Action: r.SetupConfig,
			},
			{
				Name:   "database",
				Usage:  "Initialize the fixture database and run migrations",
				Flags:  []cli.Flag{configFlag()},
				Action: r.SetupDatabase,
			},
		},
	}
}

// tuiCommand returns the top-level TUI command.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch the interactive party manager",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "log-file",
				Usage: "Where to write logs while the TUI owns the terminal",
				Value: "./tmp/festa-tui.log",
			},
		},
		Action: r.TUI,
	}
}

// webCommand serves the web front end.
func webCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "web",
		Usage: "Serve the party manager in the browser",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "addr",
				Usage: "Listen address (default: [server] host:port)",
			},
			&cli.BoolFlag{
				Name:  "open",
				Usage: "Open the page in the default browser",
			},
		},
		Action: r.Web,
	}
}

// fixtureCommand serves the local collection service.
func fixtureCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "fixture",
		Usage: "Serve a local collection service for development",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "addr",
				Usage: "Listen address (default: [fixture] host:port)",
			},
			&cli.StringFlag{
				Name:  "backend",
				Usage: "Store backend: sqlite or bolt (default: [fixture] backend)",
			},
		},
		Action: r.Fixture,
	}
}
