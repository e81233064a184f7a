/*
main.go - Command-line payroll calculator

PURPOSE:
  Calculates one month's pay from a JSON request file without running the
  server. The request format is the body of POST /api/v1/payroll/calculate.

FLAGS:
  -in        request file, "-" for stdin (default "-")
  -rules     rule-set JSON file (default: statutory rules)
  -lang      BCP 47 tag for number formatting (default "en")
  -json      print the API response JSON instead of a report
  -parallel  run the pay policies concurrently

EXAMPLES:
  ./payroll -in january.json
  ./payroll -in january.json -lang de -rules iso-week.json
  cat january.json | ./payroll -json
*/
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/warp/payroll-engine/api"
	"github.com/warp/payroll-engine/factory"
	"github.com/warp/payroll-engine/logger"
	"github.com/warp/payroll-engine/payroll"
)

func main() {
	logger.Init(logger.Options{Level: "warn", Format: "console", Writer: os.Stderr})
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		logger.Get().Error().Err(err).Msg("payroll calculation failed")
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout io.Writer) error {
	fs := flag.NewFlagSet("payroll", flag.ContinueOnError)
	in := fs.String("in", "-", `request file, "-" for stdin`)
	rulesPath := fs.String("rules", "", "rule-set JSON file")
	lang := fs.String("lang", "en", "BCP 47 language tag for number formatting")
	asJSON := fs.Bool("json", false, "print JSON instead of a report")
	parallel := fs.Bool("parallel", false, "run pay policies concurrently")
	if err := fs.Parse(args); err != nil {
		return err
	}

	tag, err := language.Parse(*lang)
	if err != nil {
		return fmt.Errorf("invalid -lang %q: %w", *lang, err)
	}

	src := stdin
	if *in != "-" {
		f, err := os.Open(*in)
		if err != nil {
			return err
		}
		defer f.Close()
		src = f
	}

	req, err := api.DecodePayrollRequest(src)
	if err != nil {
		return err
	}

	ruleSet, err := loadRuleSet(*rulesPath)
	if err != nil {
		return err
	}

	calc := &payroll.Calculator{Rules: ruleSet.Rules, Parallel: *parallel}
	summary, err := calc.Calculate(req.ToInput())
	if err != nil {
		return err
	}

	if *asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(api.NewPayrollResponse(uuid.NewString(), string(ruleSet.ID), summary))
	}
	return report(stdout, message.NewPrinter(tag), req.ToInput(), ruleSet, summary)
}

func loadRuleSet(path string) (*payroll.RuleSet, error) {
	f := factory.NewRulesFactory()
	if path == "" {
		return f.ParseRuleSet(factory.StatutoryRuleSetJSON())
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return f.ParseRuleSet(string(b))
}

// report prints a two-column summary with locale-aware number grouping.
func report(w io.Writer, p *message.Printer, in payroll.Input, rs *payroll.RuleSet, s *payroll.Summary) error {
	lines := []struct {
		label string
		value string
	}{
		{"Work hours", p.Sprintf("%.1f", s.TotalWorkHours.Float64())},
		{"Overtime hours", p.Sprintf("%.1f", s.OvertimeHours.Float64())},
		{"Night hours", p.Sprintf("%.1f", s.NightHours.Float64())},
		{"Holiday hours", p.Sprintf("%.1f", s.HolidayHours.Float64())},
		{"", ""},
		{"Base pay", p.Sprintf("%d", s.BasePay.Int64())},
		{"Overtime pay", p.Sprintf("%d", s.OvertimePay.Int64())},
		{"Night pay", p.Sprintf("%d", s.NightPay.Int64())},
		{"Holiday pay", p.Sprintf("%d", s.HolidayPay.Int64())},
		{"Weekly rest pay", p.Sprintf("%d", s.WeeklyHolidayPay.Int64())},
		{"Total pay", p.Sprintf("%d", s.TotalPay.Int64())},
	}

	period := fmt.Sprintf("%04d-%02d", in.Year, int(in.Month))
	if _, err := p.Fprintf(w, "Payroll %s, wage %d/h, rule set %s (%s)\n",
		period, in.Wage, rs.ID, rs.Rules.Weeks().Name()); err != nil {
		return err
	}
	for _, l := range lines {
		if l.label == "" {
			fmt.Fprintln(w)
			continue
		}
		if _, err := fmt.Fprintf(w, "  %-16s %14s\n", l.label, l.value); err != nil {
			return err
		}
	}
	return nil
}
