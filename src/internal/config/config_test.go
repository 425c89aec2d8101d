package config

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/maksimkurb/duetctl/src/internal/duet"
	"github.com/maksimkurb/duetctl/src/internal/errors"
)

const validTOML = `[general]
default_printer = "voron"
connect_timeout_sec = 5
read_timeout_sec = 30

[api]
listen_addr = "0.0.0.0:9000"

[[printer]]
name = "voron"
url = "http://192.168.1.50"
password = "reprap"

[[printer]]
name = "ender-3"
url = "https://ender.local/"
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	configFile := filepath.Join(t.TempDir(), "duetctl.toml")
	if err := os.WriteFile(configFile, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}
	return configFile
}

func TestLoadConfig_NonExistentFile(t *testing.T) {
	_, err := LoadConfig("/non/existent/file.toml")
	if err == nil {
		t.Fatal("Expected error for non-existent file")
	}
	if errors.CodeOf(err) != errors.ErrCodeConfig {
		t.Errorf("Expected CONFIG_ERROR, got %v", err)
	}
}

func TestLoadConfig_InvalidTOML(t *testing.T) {
	configFile := writeConfig(t, `[general
	default_printer = "voron"`)

	_, err := LoadConfig(configFile)
	if err == nil {
		t.Fatal("Expected error for invalid TOML")
	}
	if errors.CodeOf(err) != errors.ErrCodeConfig {
		t.Errorf("Expected CONFIG_ERROR, got %v", err)
	}
}

func TestLoadConfig_ValidConfig(t *testing.T) {
	configFile := writeConfig(t, validTOML)

	config, err := LoadConfig(configFile)
	if err != nil {
		t.Fatalf("Expected no error for valid config: %v", err)
	}

	if len(config.Printers) != 2 {
		t.Fatalf("Expected 2 printers, got %d", len(config.Printers))
	}
	if config.Printers[0].Password != "reprap" {
		t.Errorf("Expected password 'reprap', got %q", config.Printers[0].Password)
	}
	if config.GetConfigFilePath() != configFile {
		t.Errorf("Expected config path %s, got %s", configFile, config.GetConfigFilePath())
	}
	if config.GetConfigDir() != filepath.Dir(configFile) {
		t.Errorf("Expected config dir %s, got %s", filepath.Dir(configFile), config.GetConfigDir())
	}
	if err := config.ValidateConfig(); err != nil {
		t.Errorf("Expected valid config, got: %v", err)
	}
}

func TestLoadConfig_RelativePath(t *testing.T) {
	tmpDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(tmpDir, "duetctl.toml"), []byte(validTOML), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("Failed to change directory: %v", err)
	}
	defer func() { _ = os.Chdir(wd) }()

	config, err := LoadConfig("duetctl.toml")
	if err != nil {
		t.Fatalf("Expected no error: %v", err)
	}
	if !filepath.IsAbs(config.GetConfigFilePath()) {
		t.Errorf("Expected absolute config path, got %s", config.GetConfigFilePath())
	}
}

func TestParseConfig_FillsMissingSections(t *testing.T) {
	config, err := ParseConfig([]byte(`[[printer]]
name = "voron"
url = "http://192.168.1.50"
`))
	if err != nil {
		t.Fatalf("ParseConfig failed: %v", err)
	}

	if config.General == nil || config.API == nil {
		t.Fatal("Expected general and api sections to be created")
	}
	if config.ListenAddr() != DefaultListenAddr {
		t.Errorf("Expected default listen address, got %s", config.ListenAddr())
	}
	if p := config.DefaultPrinter(); p == nil || p.Name != "voron" {
		t.Errorf("Expected the only printer to be the default, got %+v", p)
	}
}

func TestConfig_Accessors(t *testing.T) {
	config, err := ParseConfig([]byte(validTOML))
	if err != nil {
		t.Fatalf("ParseConfig failed: %v", err)
	}

	if p := config.FindPrinter("ender-3"); p == nil || p.URL != "https://ender.local/" {
		t.Errorf("FindPrinter(ender-3) = %+v", p)
	}
	if p := config.FindPrinter("prusa"); p != nil {
		t.Errorf("FindPrinter(prusa) = %+v, want nil", p)
	}
	if p := config.DefaultPrinter(); p == nil || p.Name != "voron" {
		t.Errorf("DefaultPrinter() = %+v, want voron", p)
	}
	if addr := config.ListenAddr(); addr != "0.0.0.0:9000" {
		t.Errorf("ListenAddr() = %s", addr)
	}

	connect, read := config.Timeouts()
	if connect != 5*time.Second || read != 30*time.Second {
		t.Errorf("Timeouts() = %v, %v", connect, read)
	}
}

func TestConfig_DefaultTimeouts(t *testing.T) {
	config := &Config{General: &GeneralConfig{}}

	connect, read := config.Timeouts()
	if connect != duet.DefaultConnectTimeout || read != duet.DefaultReadTimeout {
		t.Errorf("Timeouts() = %v, %v", connect, read)
	}

	noGeneral := &Config{}
	connect, read = noGeneral.Timeouts()
	if connect != duet.DefaultConnectTimeout || read != duet.DefaultReadTimeout {
		t.Errorf("Timeouts() without general = %v, %v", connect, read)
	}
}

func TestConfig_NoDefaultPrinter(t *testing.T) {
	config := &Config{
		General: &GeneralConfig{},
		Printers: []*PrinterConfig{
			{Name: "a", URL: "http://a"},
			{Name: "b", URL: "http://b"},
		},
	}

	if p := config.DefaultPrinter(); p != nil {
		t.Errorf("Expected no default among several printers, got %+v", p)
	}
}

func TestNewSinglePrinterConfig(t *testing.T) {
	config := NewSinglePrinterConfig("cli", "http://10.0.0.5", "secret")

	if err := config.ValidateConfig(); err != nil {
		t.Fatalf("Expected valid config, got: %v", err)
	}
	p := config.DefaultPrinter()
	if p == nil || p.URL != "http://10.0.0.5" || p.Password != "secret" {
		t.Errorf("DefaultPrinter() = %+v", p)
	}
}

func TestSerializeConfig_RoundTrip(t *testing.T) {
	config, err := ParseConfig([]byte(validTOML))
	if err != nil {
		t.Fatalf("ParseConfig failed: %v", err)
	}

	buf, err := config.SerializeConfig()
	if err != nil {
		t.Fatalf("SerializeConfig failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "[[printer]]") || !strings.Contains(out, "default_printer = 'voron'") {
		t.Errorf("Unexpected serialized config:\n%s", out)
	}

	reparsed, err := ParseConfig(buf.Bytes())
	if err != nil {
		t.Fatalf("Failed to parse serialized config: %v", err)
	}
	if len(reparsed.Printers) != 2 || reparsed.Printers[1].Name != "ender-3" {
		t.Errorf("Unexpected printers after round trip: %+v", reparsed.Printers)
	}
}

func TestLoadConfig_ErrorIsConfigError(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, "printer = 5\n[[printer]]\n"))

	var domainErr *errors.Error
	if !stderrors.As(err, &domainErr) || domainErr.Code != errors.ErrCodeConfig {
		t.Errorf("Expected CONFIG_ERROR, got %v", err)
	}
}
