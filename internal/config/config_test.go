package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/totegamma/gravatar"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
server:
  baseURL: "https://secure.gravatar.com/avatar/"
  redisAddr: "redis:6379"
  redisDB: 2
presets:
  thumb:
    size: 32
    default: identicon
  card:
    size: 256
    rating: PG
    fileExtension: png
`)

	conf, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if conf.Server.Listen != ":8000" {
		t.Fatalf("expected default listen got %s", conf.Server.Listen)
	}
	if conf.Server.BaseURL != "https://secure.gravatar.com/avatar/" {
		t.Fatalf("unexpected base url %s", conf.Server.BaseURL)
	}
	if conf.Server.RedisAddr != "redis:6379" || conf.Server.RedisDB != 2 {
		t.Fatalf("unexpected redis settings %+v", conf.Server)
	}
	if len(conf.Presets) != 2 {
		t.Fatalf("expected 2 presets got %d", len(conf.Presets))
	}

	p, err := gravatar.NewFromConfig(conf.Presets["card"])
	if err != nil {
		t.Fatalf("preset failed: %v", err)
	}
	if size, _ := p.Size(); size != 256 {
		t.Fatalf("expected size 256 got %d", size)
	}
	if p.Option(gravatar.OptionRating) != "PG" {
		t.Fatalf("expected rating PG got %s", p.Option(gravatar.OptionRating))
	}
}

func TestLoadDefaults(t *testing.T) {
	conf, err := Load(writeConfig(t, "server: {}\n"))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if conf.Server.BaseURL != gravatar.BaseURL {
		t.Fatalf("expected default base url got %s", conf.Server.BaseURL)
	}
}

func TestLoadRejectsUnknownPresetKey(t *testing.T) {
	path := writeConfig(t, `
presets:
  broken:
    colour: red
`)
	_, err := Load(path)
	if err == nil {
		t.Fatalf("expected error for unknown preset key")
	}
	if !errors.Is(err, gravatar.ErrConfiguration) {
		t.Fatalf("expected configuration error got %v", err)
	}
}

func TestLoadQuotedBorder(t *testing.T) {
	path := writeConfig(t, `
presets:
  framed:
    border: "000"
    size: "010"
`)
	conf, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	p, err := gravatar.NewFromConfig(conf.Presets["framed"])
	if err != nil {
		t.Fatalf("preset failed: %v", err)
	}
	if border, _ := p.Border(); border != "000" {
		t.Fatalf("expected border 000 got %s", border)
	}
	if size, _ := p.Size(); size != 10 {
		t.Fatalf("expected size 10 got %d", size)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
