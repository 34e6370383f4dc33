package cmd

import (
	"bytes"
	"context"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/hypebeast/go-osc/osc"

	"rfidosc/feedback"
	"rfidosc/notify"
	"rfidosc/tags"
)

func TestFader_SendsCountValues(t *testing.T) {
	conn, err := net.ListenPacket("udp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()
	port := conn.LocalAddr().(*net.UDPAddr).Port

	values := []float32{0.25, 0.5, 0.75}
	i := 0
	f := &Fader{
		Client:   notify.NewOSC("127.0.0.1", port),
		Address:  FaderAddress,
		Count:    len(values),
		Interval: time.Millisecond,
		Value: func() float32 {
			v := values[i]
			i++
			return v
		},
	}

	var printed []float32
	if err := f.Run(context.Background(), func(v float32) { printed = append(printed, v) }); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(printed) != len(values) {
		t.Fatalf("Expected %d values printed, got %v", len(values), printed)
	}

	buf := make([]byte, 1024)
	for _, want := range values {
		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		n, _, err := conn.ReadFrom(buf)
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		packet, err := osc.ParsePacket(string(buf[:n]))
		if err != nil {
			t.Fatalf("ParsePacket: %v", err)
		}
		msg, ok := packet.(*osc.Message)
		if !ok {
			t.Fatalf("Expected *osc.Message, got %T", packet)
		}
		if msg.Address != "/1/fader5" || len(msg.Arguments) != 1 || msg.Arguments[0] != want {
			t.Errorf("got %s %v, want /1/fader5 %v", msg.Address, msg.Arguments, want)
		}
	}
}

func TestFader_RandomValuesInRange(t *testing.T) {
	conn, err := net.ListenPacket("udp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()

	f := &Fader{
		Client:   notify.NewOSC("127.0.0.1", conn.LocalAddr().(*net.UDPAddr).Port),
		Address:  FaderAddress,
		Count:    10,
		Interval: time.Microsecond,
		Value:    func() float32 { return float32(time.Now().Nanosecond()%1000) / 1000 },
	}
	count := 0
	err = f.Run(context.Background(), func(v float32) {
		count++
		if v < 0 || v >= 1 {
			t.Errorf("value %v out of range", v)
		}
	})
	if err != nil || count != 10 {
		t.Errorf("Run: %v, %d values", err, count)
	}
}

func TestFader_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	n := 0
	f := &Fader{
		Client:   notify.NewOSC("127.0.0.1", 9),
		Address:  FaderAddress,
		Count:    10,
		Interval: time.Hour,
		Value:    func() float32 { return 0.5 },
	}
	if err := f.Run(ctx, func(float32) { n++ }); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if n != 1 {
		t.Errorf("Expected one value before stopping, got %d", n)
	}
}

func TestListen(t *testing.T) {
	conn, err := net.ListenPacket("udp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	port := conn.LocalAddr().(*net.UDPAddr).Port

	ctx, cancel := context.WithCancel(context.Background())
	got := make(chan *osc.Message, 1)
	errc := make(chan error, 1)
	go func() {
		errc <- Listen(ctx, conn, func(m *osc.Message) { got <- m })
	}()

	if err := notify.NewOSC("127.0.0.1", port).Send(notify.Message{Address: "/4/multitoggle/2/1", Value: 1}); err != nil {
		t.Fatalf("Send: %v", err)
	}

	select {
	case m := <-got:
		if m.Address != "/4/multitoggle/2/1" {
			t.Errorf("got %s", m.Address)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no message received")
	}

	cancel()
	select {
	case err := <-errc:
		if err != nil {
			t.Errorf("Listen: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Listen did not stop")
	}
}

func TestPrintTags(t *testing.T) {
	var buf bytes.Buffer
	if err := printTags(&buf, tags.Default(), feedback.DefaultTable()); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{
		"23 a8 18 f7 64",
		"Blue tag 1",
		"/4/multitoggle/2/1 1",
		"mario",
		"/4/multitoggle/2/8 1",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestArgUID(t *testing.T) {
	reg := tags.Default()

	uid, err := argUID(reg, "1")
	if err != nil || !bytes.Equal(uid, tags.UID{0x23, 0xa8, 0x18, 0xf7, 0x64}) {
		t.Errorf("argUID(1) = %v %v", uid, err)
	}
	uid, err = argUID(reg, "deadbeef")
	if err != nil || !bytes.Equal(uid, tags.UID{0xde, 0xad, 0xbe, 0xef}) {
		t.Errorf("argUID(deadbeef) = %v %v", uid, err)
	}
	if _, err := argUID(reg, "not-a-uid"); err == nil {
		t.Error("Expected error")
	}
}
