/*
Package cli holds helpers shared by the relay commands: output formatting
for --output, typed command errors and signal-aware contexts.

	formatter := cli.NewFormatter(cli.FormatJSON)
	if err := formatter.FormatTo(os.Stdout, reply); err != nil {
		return err
	}

	ctx, stop := cli.SetupSignalHandler(context.Background())
	defer stop()
*/
package cli
