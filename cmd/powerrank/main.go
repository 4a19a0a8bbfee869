// Command powerrank 计算两两偏好投票的 power 排名。
//
//	powerrank compute -input votes.json
//	powerrank rank -config powerrank.yaml -scope box-2024 [-scope ...]
//	powerrank vote -config powerrank.yaml -scope box-2024 -input ballot.json
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rushteam/powerrank/core"
	"github.com/rushteam/powerrank/pkg/log"
	"github.com/rushteam/powerrank/power"
	"github.com/rushteam/powerrank/service"
)

// computeInput 是 compute 子命令的输入文件格式。
type computeInput struct {
	Items         []string          `json:"items"`
	Votes         []core.Comparison `json:"votes"`
	DampingFactor *float64          `json:"dampingFactor"`
}

type scopeList []string

func (s *scopeList) String() string     { return fmt.Sprint([]string(*s)) }
func (s *scopeList) Set(v string) error { *s = append(*s, v); return nil }

func main() {
	if len(os.Args) < 2 {
		usage(os.Stderr)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var err error
	switch os.Args[1] {
	case "compute":
		err = runCompute(os.Args[2:], os.Stdout)
	case "rank":
		err = runRank(ctx, os.Args[2:], os.Stdout)
	case "vote":
		err = runVote(ctx, os.Args[2:])
	case "-h", "--help", "help":
		usage(os.Stdout)
		return
	default:
		usage(os.Stderr)
		os.Exit(2)
	}
	if err != nil {
		log.Errorf("%s: %v", os.Args[1], err)
		os.Exit(1)
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "usage: powerrank <compute|rank|vote> [flags]")
}

func runCompute(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("compute", flag.ContinueOnError)
	input := fs.String("input", "", "JSON file with items, votes and dampingFactor (- for stdin)")
	maxIter := fs.Int("max-iterations", 0, "iteration cap (0 = default)")
	tol := fs.Float64("tolerance", 0, "L1 convergence tolerance (0 = default)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *input == "" {
		return errors.New("-input is required")
	}

	data, err := readInput(*input)
	if err != nil {
		return err
	}
	var in computeInput
	if err := json.Unmarshal(data, &in); err != nil {
		return fmt.Errorf("decode %s: %w", *input, err)
	}

	d := (&core.DefaultRankConfig{}).DefaultDampingFactor()
	if in.DampingFactor != nil {
		d = *in.DampingFactor
	}
	var opts []power.Option
	if *maxIter > 0 {
		opts = append(opts, power.WithMaxIterations(*maxIter))
	}
	if *tol > 0 {
		opts = append(opts, power.WithTolerance(*tol))
	}

	ranking, err := power.ComputeRanking(in.Items, in.Votes, d, opts...)
	if err != nil {
		return err
	}
	if ranking.InsufficientData() {
		log.Warnf("fewer than %d participants, all powers are zero", power.MinParticipants)
	}
	return writeJSON(out, ranking)
}

func loadConfig(path string) (*service.Config, error) {
	cfg, errs := service.LoadConfig(path)
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	log.SetLevel(cfg.LogLevel)
	return cfg, nil
}

func runRank(ctx context.Context, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("rank", flag.ContinueOnError)
	cfgPath := fs.String("config", "", "config file (optional, POWERRANK_* env overrides)")
	var scopes scopeList
	fs.Var(&scopes, "scope", "scope to rank (repeatable)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if len(scopes) == 0 {
		return errors.New("at least one -scope is required")
	}

	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		return err
	}
	b, err := service.NewFromConfig(ctx, cfg)
	if err != nil {
		return err
	}
	defer b.Close()

	if len(scopes) == 1 {
		res, err := b.Service.Rank(ctx, scopes[0])
		if err != nil {
			return err
		}
		return writeJSON(out, res)
	}
	results, err := b.Service.RankScopes(ctx, scopes)
	if err != nil {
		return err
	}
	return writeJSON(out, results)
}

func runVote(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("vote", flag.ContinueOnError)
	cfgPath := fs.String("config", "", "config file (optional, POWERRANK_* env overrides)")
	scope := fs.String("scope", "", "scope the ballot belongs to")
	input := fs.String("input", "", "JSON ballot file (- for stdin)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *scope == "" || *input == "" {
		return errors.New("-scope and -input are required")
	}

	data, err := readInput(*input)
	if err != nil {
		return err
	}
	var ballot core.Ballot
	if err := json.Unmarshal(data, &ballot); err != nil {
		return fmt.Errorf("decode %s: %w", *input, err)
	}

	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		return err
	}
	b, err := service.NewFromConfig(ctx, cfg)
	if err != nil {
		return err
	}
	defer b.Close()

	return b.Service.SubmitBallot(ctx, *scope, ballot)
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
