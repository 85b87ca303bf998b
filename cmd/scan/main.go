// Command scan runs one scoring request from the terminal and renders the
// envelope, either as a human-readable report or as raw JSON.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/pterm/pterm"
	flag "github.com/spf13/pflag"

	"trustlens/adscan"
	"trustlens/config"
	"trustlens/dropship"
	"trustlens/scoring"
	"trustlens/socialscan"
	"trustlens/tokenscan"
	"trustlens/urlscan"
)

var (
	kind     = flag.String("kind", "url", "scan kind: url | social | dropship | rugpull | ad")
	input    = flag.String("input", "", "path to a JSON subject payload (- for stdin); url kind takes the URL as an argument instead")
	asJSON   = flag.Bool("json", false, "print the raw envelope JSON instead of the report")
	timeout  = flag.Duration("timeout", 30*time.Second, "overall scan deadline")
	quietLog = flag.Bool("quiet", true, "suppress analyzer log lines")
)

func main() {
	flag.Parse()

	if *quietLog {
		log.SetOutput(io.Discard)
	}

	cfg := config.Load()
	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	env, err := runScan(ctx, cfg)
	if err != nil {
		var structural *scoring.StructuralError
		if errors.As(err, &structural) && env != nil {
			render(env)
			os.Exit(1)
		}
		pterm.Error.Println(err)
		os.Exit(1)
	}
	render(env)
}

func runScan(ctx context.Context, cfg config.Config) (*scoring.Envelope, error) {
	switch *kind {
	case "url":
		if flag.NArg() != 1 {
			return nil, fmt.Errorf("usage: scan --kind url <url>")
		}
		return urlscan.New(cfg).Scan(ctx, flag.Arg(0))
	case "social":
		var profile socialscan.Profile
		if err := readSubject(&profile); err != nil {
			return nil, err
		}
		return socialscan.New().Scan(ctx, profile)
	case "dropship":
		var listing dropship.Listing
		if err := readSubject(&listing); err != nil {
			return nil, err
		}
		return dropship.New().Scan(ctx, listing)
	case "rugpull":
		var contract tokenscan.Contract
		if err := readSubject(&contract); err != nil {
			return nil, err
		}
		return tokenscan.New(cfg).Scan(ctx, contract)
	case "ad":
		var ad adscan.Ad
		if err := readSubject(&ad); err != nil {
			return nil, err
		}
		return adscan.New().Scan(ctx, ad)
	default:
		return nil, fmt.Errorf("unknown kind %q", *kind)
	}
}

func readSubject(dst any) error {
	if *input == "" {
		return fmt.Errorf("--input is required for kind %q", *kind)
	}
	var data []byte
	var err error
	if *input == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(*input)
	}
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("parse subject payload: %w", err)
	}
	return nil
}

func render(env *scoring.Envelope) {
	if *asJSON {
		out, _ := json.MarshalIndent(env, "", "  ")
		fmt.Println(string(out))
		return
	}

	pterm.DefaultSection.Printf("%s scan %s", env.Kind, env.ID)

	scoreStyle := pterm.Success
	switch {
	case env.Score < 40:
		scoreStyle = pterm.Error
	case env.Score < 70:
		scoreStyle = pterm.Warning
	}
	scoreStyle.Printf("score %d/100, verdict: %s\n", env.Score, env.Verdict)

	if len(env.Detail) > 0 {
		for k, v := range env.Detail {
			pterm.Info.Printf("%s: %v\n", k, v)
		}
	}

	if len(env.ProbeDetail) > 0 {
		table := pterm.TableData{{"probe", "outcome", "credit", "explanation"}}
		for _, d := range env.ProbeDetail {
			credit := "-"
			if d.Credit != nil {
				credit = fmt.Sprintf("%.2f", *d.Credit)
			}
			table = append(table, []string{d.Name, d.Outcome, credit, d.Explanation})
		}
		_ = pterm.DefaultTable.WithHasHeader().WithData(table).Render()
	}

	pterm.Println(pterm.Gray(fmt.Sprintf("completed in %dms", env.ProcessingTimeMs)))
}
