package devices

import (
	"io"
	"log"
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
)

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

var errBroken = errors.New("broken")

type testDevice struct {
	id       ID
	fail     bool
	calls    *[]string
	shutdown bool
}

func (d *testDevice) ID() ID { return d.id }

func (d *testDevice) Startup() error {
	*d.calls = append(*d.calls, "startup "+d.id.String())
	if d.fail {
		return errBroken
	}
	return nil
}

func (d *testDevice) Shutdown() error {
	*d.calls = append(*d.calls, "shutdown "+d.id.String())
	d.shutdown = true
	if d.fail {
		return errBroken
	}
	return nil
}

func TestConnect(t *testing.T) {
	var calls []string
	var dm Map

	a := &testDevice{id: NewID(Manufacturer, 1), calls: &calls}
	b := &testDevice{id: NewID(Manufacturer, 2), calls: &calls}

	if !dm.Connect(a) || !dm.Connect(b) {
		t.Fatalf("expected devices to connect")
	}

	if dm.Connect(&testDevice{id: a.id, calls: &calls}) {
		t.Fatalf("duplicate device connected")
	}

	if i := dm.Find(b.id); i != 1 {
		t.Fatalf("want index 1; have %d", i)
	}

	if i := dm.Find(NewID(1, 1)); i != -1 {
		t.Fatalf("want -1 for unknown device; have %d", i)
	}
}

func TestStartupShutdown(t *testing.T) {
	var calls []string
	var dm Map

	dm.Connect(&testDevice{id: NewID(Manufacturer, 1), calls: &calls})
	dm.Connect(&testDevice{id: NewID(Manufacturer, 2), calls: &calls, fail: true})
	dm.Connect(&testDevice{id: NewID(Manufacturer, 3), calls: &calls})

	err := dm.Startup()

	var set ErrorSet
	if !errors.As(err, &set) || set.Len() != 1 {
		t.Fatalf("want one startup error; have %v", err)
	}

	if !errors.Is(err, errBroken) {
		t.Fatalf("startup error does not wrap the device error: %v", err)
	}

	if want := "00c8:0002: broken"; err.Error() != want {
		t.Fatalf("want %q; have %q", want, err.Error())
	}

	if err := dm.Shutdown(); err == nil {
		t.Fatalf("expected shutdown error")
	}

	want := []string{
		"startup 00c8:0001",
		"startup 00c8:0002",
		"startup 00c8:0003",
		"shutdown 00c8:0003",
		"shutdown 00c8:0002",
		"shutdown 00c8:0001",
	}

	if diff := cmp.Diff(want, calls); diff != "" {
		t.Fatalf("call order mismatch (-want, +have)\n%s", diff)
	}
}

func TestEmptyMap(t *testing.T) {
	var dm Map

	if err := dm.Startup(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := dm.Shutdown(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestID(t *testing.T) {
	id := NewID(0x1c8, 0x12345)

	if id.Manufacturer() != 0x01c8 || id.Serial() != 0x2345 {
		t.Fatalf("unexpected components: %s", id)
	}

	if want := "01c8:2345"; id.String() != want {
		t.Fatalf("want %q; have %q", want, id)
	}
}
