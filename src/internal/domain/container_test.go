package domain_test

import (
	stderrors "errors"
	"sync"
	"testing"

	"github.com/maksimkurb/duetctl/src/internal/config"
	"github.com/maksimkurb/duetctl/src/internal/domain"
	"github.com/maksimkurb/duetctl/src/internal/errors"
	"github.com/maksimkurb/duetctl/src/internal/mocks"
)

func testConfig() *config.Config {
	return &config.Config{
		General: &config.GeneralConfig{DefaultPrinter: "voron"},
		Printers: []*config.PrinterConfig{
			{Name: "voron", URL: "http://192.168.1.50"},
			{Name: "ender", URL: "http://192.168.1.51"},
		},
	}
}

func TestNewAppDependencies_DoesNotConnect(t *testing.T) {
	calls := 0
	deps := domain.NewTestDependencies(testConfig(), mocks.NewMockPrinterConnector(mocks.NewMockPrinterClient(), &calls))

	names := deps.PrinterNames()
	if len(names) != 2 || names[0] != "voron" || names[1] != "ender" {
		t.Errorf("Unexpected printer names: %v", names)
	}
	if _, err := deps.Printer("voron"); err != nil {
		t.Fatalf("Printer(voron) failed: %v", err)
	}
	if calls != 0 {
		t.Errorf("Expected no connection before first use, got %d", calls)
	}
}

func TestPrinter_ConnectsOnce(t *testing.T) {
	calls := 0
	mock := mocks.NewMockPrinterClient()
	deps := domain.NewTestDependencies(testConfig(), mocks.NewMockPrinterConnector(mock, &calls))

	printer, err := deps.Printer("voron")
	if err != nil {
		t.Fatalf("Printer(voron) failed: %v", err)
	}

	for i := 0; i < 3; i++ {
		err := printer.Do(func(client domain.PrinterClient) error {
			return client.SendGCode("M114")
		})
		if err != nil {
			t.Fatalf("Do failed: %v", err)
		}
	}

	if calls != 1 {
		t.Errorf("Expected a single connection, got %d", calls)
	}
	if got := len(mock.SentCommands()); got != 3 {
		t.Errorf("Expected 3 commands, got %d", got)
	}

	printer.Reconnect()
	if calls != 2 {
		t.Errorf("Expected Reconnect to create a new client, got %d connections", calls)
	}
}

func TestPrinter_ClientDoesNotConnectOrWait(t *testing.T) {
	calls := 0
	deps := domain.NewTestDependencies(testConfig(), mocks.NewMockPrinterConnector(mocks.NewMockPrinterClient(), &calls))
	printer, _ := deps.Printer("voron")

	if client := printer.Client(); client != nil {
		t.Errorf("Expected no client before first use, got %v", client)
	}
	if calls != 0 {
		t.Fatalf("Client() must not connect, got %d connections", calls)
	}

	started := make(chan struct{})
	release := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = printer.Do(func(client domain.PrinterClient) error {
			close(started)
			<-release
			return nil
		})
	}()
	<-started

	if printer.Client() == nil {
		t.Error("Expected the client while a call is running")
	}
	close(release)
	<-done
}

func TestPrinter_DoSerializesCalls(t *testing.T) {
	deps := domain.NewTestDependencies(testConfig(), mocks.NewMockPrinterConnector(mocks.NewMockPrinterClient(), nil))
	printer, _ := deps.Printer("voron")

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		active  int
		overlap bool
	)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = printer.Do(func(client domain.PrinterClient) error {
				mu.Lock()
				active++
				if active > 1 {
					overlap = true
				}
				mu.Unlock()

				_, err := client.GetStatus()

				mu.Lock()
				active--
				mu.Unlock()
				return err
			})
		}()
	}
	wg.Wait()

	if overlap {
		t.Error("Expected calls on one printer to be serialized")
	}
}

func TestPrinter_DoReturnsError(t *testing.T) {
	mock := &mocks.MockPrinterClient{
		GetStatusFunc: func() (string, error) {
			return "", errors.NewUnsupportedFirmwareError("not detected")
		},
	}
	deps := domain.NewTestDependencies(testConfig(), mocks.NewMockPrinterConnector(mock, nil))
	printer, _ := deps.Printer("ender")

	err := printer.Do(func(client domain.PrinterClient) error {
		_, err := client.GetStatus()
		return err
	})
	if !stderrors.Is(err, errors.ErrUnsupportedFirmware) {
		t.Errorf("Expected ErrUnsupportedFirmware, got %v", err)
	}
}

func TestAppDependencies_UnknownPrinter(t *testing.T) {
	deps := domain.NewTestDependencies(testConfig(), mocks.NewMockPrinterConnector(mocks.NewMockPrinterClient(), nil))

	_, err := deps.Printer("prusa")
	if !stderrors.Is(err, errors.ErrPrinterNotFound) {
		t.Errorf("Expected ErrPrinterNotFound, got %v", err)
	}
}

func TestAppDependencies_DefaultPrinter(t *testing.T) {
	deps := domain.NewTestDependencies(testConfig(), mocks.NewMockPrinterConnector(mocks.NewMockPrinterClient(), nil))

	printer, err := deps.DefaultPrinter()
	if err != nil {
		t.Fatalf("DefaultPrinter failed: %v", err)
	}
	if printer.Config.Name != "voron" {
		t.Errorf("Expected voron, got %s", printer.Config.Name)
	}

	cfg := testConfig()
	cfg.General.DefaultPrinter = ""
	deps = domain.NewTestDependencies(cfg, mocks.NewMockPrinterConnector(mocks.NewMockPrinterClient(), nil))
	if _, err := deps.DefaultPrinter(); errors.CodeOf(err) != errors.ErrCodeConfig {
		t.Errorf("Expected CONFIG_ERROR without a default printer, got %v", err)
	}
}
