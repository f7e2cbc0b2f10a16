package codec

import (
	"time"

	forma "github.com/soracane/forma"
	"github.com/soracane/forma/dsl"
)

// TimeRFC3339 returns a Codec between RFC3339 strings and time.Time. Decode
// accepts RFC3339Nano first so fractional seconds survive, then plain
// RFC3339; Encode emits the canonical UTC RFC3339Nano form.
func TimeRFC3339() forma.Codec[string, time.Time] {
	return &rfc3339Codec{
		in:  dsl.String(),
		out: dsl.Date(),
	}
}

type rfc3339Codec struct {
	in  forma.Schema[string]
	out forma.Schema[time.Time]
}

func (c *rfc3339Codec) In() forma.Schema[string]     { return c.in }
func (c *rfc3339Codec) Out() forma.Schema[time.Time] { return c.out }

func (c *rfc3339Codec) Decode(a string) forma.Result[time.Time, forma.ParseError] {
	t, err := parseRFC3339(a)
	if err != nil {
		return forma.Err[time.Time, forma.ParseError](forma.NewParseError(forma.MsgExpectingTimestamp, a))
	}
	// The date schema screens out zero times and out-of-range years.
	return c.out.Validate(t)
}

func (c *rfc3339Codec) Encode(b time.Time) forma.Result[string, forma.ParseError] {
	if e, failed := c.out.Validate(b).GetErr(); failed {
		return forma.Err[string, forma.ParseError](e)
	}
	return c.in.Validate(canonicalRFC3339(b))
}

func parseRFC3339(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		if t2, err2 := time.Parse(time.RFC3339, s); err2 == nil {
			return t2, nil
		}
		return time.Time{}, err
	}
	return t, nil
}

func canonicalRFC3339(t time.Time) string {
	// Go trims trailing fractional zeros under RFC3339Nano.
	return t.UTC().Format(time.RFC3339Nano)
}
