package errcode

import (
	"errors"
	"testing"
)

func TestCodesAreStableStrings(t *testing.T) {
	cases := map[string]Code{
		"ok":             OK,
		"unsupported":    Unsupported,
		"invalid_params": InvalidParams,
		"registry_full":  RegistryFull,
		"unknown_source": UnknownSource,
		"invalid_frame":  InvalidFrame,
		"driver_fault":   DriverFault,
		"error":          Error,
	}
	for want, c := range cases {
		if c.Error() != want {
			t.Fatalf("code %q mismatch: got %q", want, c.Error())
		}
	}
}

func TestOf(t *testing.T) {
	cause := errors.New("pwm: bad channel")
	cases := []struct {
		name string
		err  error
		want Code
	}{
		{"nil", nil, OK},
		{"bare code", RegistryFull, RegistryFull},
		{"wrapped", Wrap(DriverFault, "servo", cause), DriverFault},
		{"foreign", cause, Error},
	}
	for _, c := range cases {
		if got := Of(c.err); got != c.want {
			t.Fatalf("%s: Of() = %q, want %q", c.name, got, c.want)
		}
	}
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("ws2812: timeout")
	err := Wrap(DriverFault, "strip.show", cause)
	if !errors.Is(err, cause) {
		t.Fatal("wrapped error does not unwrap to its cause")
	}
	if got, want := err.Error(), "strip.show: driver_fault: ws2812: timeout"; got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}
	if got, want := Wrap(InvalidFrame, "link", nil).Error(), "link: invalid_frame"; got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}
}

func TestIsMatchesWrappedCode(t *testing.T) {
	err := Wrap(InvalidFrame, "split", errors.New("EOF found when expecting closing quote"))
	if !errors.Is(err, InvalidFrame) {
		t.Fatal("wrapped error does not match its code")
	}
	if errors.Is(err, RegistryFull) {
		t.Fatal("wrapped error matches a different code")
	}
	outer := &E{C: DriverFault, Op: "lights", Err: err}
	if !errors.Is(outer, InvalidFrame) || !errors.Is(outer, DriverFault) {
		t.Fatal("chain lost a code")
	}
}
