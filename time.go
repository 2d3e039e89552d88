package pairswap

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"

	"github.com/iov-one/pairswap/errors"
)

// UnixTime is a point in time in seconds since the epoch. Escrow
// deadlines and the block time use it. The host provides the current value
// through the context, see BlockUnixTime.
type UnixTime int64

// AsUnixTime truncates t to whole seconds.
func AsUnixTime(t time.Time) UnixTime {
	return UnixTime(t.Unix())
}

func (t UnixTime) Time() time.Time {
	return time.Unix(int64(t), 0)
}

func (t UnixTime) IsZero() bool {
	return t == 0
}

// Add works like time.Time.Add. Precision below a second is truncated.
func (t UnixTime) Add(d time.Duration) UnixTime {
	return t + UnixTime(d/time.Second)
}

// UnmarshalJSON accepts the number of seconds or an RFC 3339 string. The
// latter is easier to write by hand in genesis files and scripts.
func (t *UnixTime) UnmarshalJSON(raw []byte) error {
	var unix int64
	if bytes.HasPrefix(bytes.TrimSpace(raw), []byte(`"`)) {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return errors.Wrap(errors.ErrInput, "invalid time format")
		}
		parsed, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return errors.Wrapf(errors.ErrInput, "invalid time format: %q", s)
		}
		unix = parsed.Unix()
	} else {
		n, err := strconv.ParseInt(string(bytes.TrimSpace(raw)), 10, 64)
		if err != nil {
			return errors.Wrap(errors.ErrInput, "invalid time format")
		}
		unix = n
	}
	if unix < 0 {
		return errors.Wrap(errors.ErrInput, "time before epoch")
	}
	*t = UnixTime(unix)
	return nil
}

func (t UnixTime) Validate() error {
	if t < 0 {
		return errors.Wrap(errors.ErrState, "negative value")
	}
	return nil
}

// String returns the time in RFC 3339 format, in UTC.
func (t UnixTime) String() string {
	return t.Time().UTC().Format(time.RFC3339)
}
