package cmd

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/etnz/finboard"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "finboard.json")
	content := `{
		"splits": {"TSLA": [{"date": "2022-08-25", "ratio": 3}]},
		"tickers": {"BTC": "BTC-USD"}
	}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	old := *configFile
	*configFile = path
	t.Cleanup(func() { *configFile = old })

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Tickers["BTC"] != "BTC-USD" {
		t.Errorf("tickers = %v", cfg.Tickers)
	}

	table := cfg.SplitTable()
	splits := table["TSLA"]
	if len(splits) != 1 {
		t.Fatalf("got %d splits, want 1", len(splits))
	}
	if splits[0].EffectiveDate.String() != "2022-08-25" || splits[0].Ratio.String() != "3" {
		t.Errorf("split = %+v", splits[0])
	}
}

func TestLoadConfig_MissingFileIsEmpty(t *testing.T) {
	old := *configFile
	*configFile = filepath.Join(t.TempDir(), "absent.json")
	t.Cleanup(func() { *configFile = old })

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("missing config must not fail: %v", err)
	}
	if len(cfg.Splits) != 0 || len(cfg.Tickers) != 0 {
		t.Errorf("cfg = %+v, want empty", cfg)
	}
}

func TestFilterFlags(t *testing.T) {
	var ff filterFlags
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	ff.SetFlags(fs)
	if err := fs.Parse([]string{"-platform", "tdrp, bina", "-type", "crp", "-from", "2023-01-01"}); err != nil {
		t.Fatal(err)
	}

	filter, err := ff.Filter()
	if err != nil {
		t.Fatal(err)
	}
	if len(filter.Platforms) != 2 || filter.Platforms[0] != "TDRP" || filter.Platforms[1] != "BINA" {
		t.Errorf("platforms = %v", filter.Platforms)
	}
	if len(filter.Types) != 1 || filter.Types[0] != finboard.Crypto {
		t.Errorf("types = %v", filter.Types)
	}
	if filter.From.String() != "2023-01-01" || !filter.To.IsZero() {
		t.Errorf("range = %s..%s", filter.From, filter.To)
	}
}

func TestFilterFlags_BadType(t *testing.T) {
	var ff filterFlags
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	ff.SetFlags(fs)
	if err := fs.Parse([]string{"-type", "BND"}); err != nil {
		t.Fatal(err)
	}
	if _, err := ff.Filter(); err == nil {
		t.Error("unknown type must fail")
	}
}
