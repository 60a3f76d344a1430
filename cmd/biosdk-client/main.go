package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"slices"
	"strings"

	"github.com/ruteri/biosdk-services/api/biosdkhandler"
	"github.com/ruteri/biosdk-services/cmd/flags"
	"github.com/urfave/cli/v2"
)

var (
	operationFlag = &cli.StringFlag{
		Name:     "operation",
		Required: true,
		Usage:    "operation to call: " + strings.Join(biosdkhandler.Operations, ", "),
	}
	requestFileFlag = &cli.StringFlag{
		Name:     "request-file",
		Required: true,
		Usage:    "JSON file holding the request model, '-' for stdin",
	}
	specVersionFlag = &cli.StringFlag{
		Name:  "spec-version",
		Usage: "spec version to pin in the envelope",
	}
)

func main() {
	app := &cli.App{
		Name:  "biosdk-client",
		Usage: "Call a biosdk service operation",
		Flags: []cli.Flag{
			flags.ServerAddrFlag,
			operationFlag,
			requestFileFlag,
			specVersionFlag,
		},
		Action: func(cCtx *cli.Context) error {
			op := cCtx.String(operationFlag.Name)
			if !slices.Contains(biosdkhandler.Operations, op) {
				return fmt.Errorf("unknown operation %q", op)
			}

			var body []byte
			var err error
			if path := cCtx.String(requestFileFlag.Name); path == "-" {
				body, err = io.ReadAll(os.Stdin)
			} else {
				body, err = os.ReadFile(path)
			}
			if err != nil {
				return fmt.Errorf("could not read request: %w", err)
			}
			if !json.Valid(body) {
				return fmt.Errorf("request is not valid JSON")
			}

			client := biosdkhandler.NewClient(cCtx.String(flags.ServerAddrFlag.Name))
			client.Version = cCtx.String(specVersionFlag.Name)

			result, err := client.Call(cCtx.Context, op, json.RawMessage(body))
			if err != nil {
				return err
			}

			var out bytes.Buffer
			if err := json.Indent(&out, result, "", "  "); err != nil {
				return fmt.Errorf("could not format response: %w", err)
			}
			fmt.Println(out.String())
			return nil
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

