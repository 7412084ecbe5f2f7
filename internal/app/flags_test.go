package app

import (
	"flag"
	"testing"
)

func TestBindParsesSettings(t *testing.T) {
	cfg := NewConfig()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg.Bind(fs)
	err := fs.Parse([]string{"-sim", "cube", "-seed", "9", "-set", "face=12", "-set", "seekers=5,bouncers=0"})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Sim != "cube" || cfg.Seed != 9 {
		t.Fatalf("parsed sim=%q seed=%d", cfg.Sim, cfg.Seed)
	}
	if got := cfg.Set.String(); got != "bouncers=0,face=12,seekers=5" {
		t.Fatalf("settings = %q", got)
	}

	merged := cfg.Set.Merge(map[string]string{"face": "8", "seed": "1"})
	if merged["face"] != "12" || merged["seed"] != "1" || len(merged) != 4 {
		t.Fatalf("merge = %v", merged)
	}
}

func TestKVRejectsBarePairs(t *testing.T) {
	kv := KV{}
	if err := kv.Set("speed"); err == nil {
		t.Fatal("pair without = accepted")
	}
	if err := kv.Set("=3"); err == nil {
		t.Fatal("empty key accepted")
	}
}
