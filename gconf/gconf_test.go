package gconf

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/pairswap"
	"github.com/iov-one/pairswap/errors"
	"github.com/iov-one/pairswap/store"
	"github.com/iov-one/pairswap/swaptest/assert"
)

type myConfig struct {
	Number int64  `json:"number"`
	Text   string `json:"text"`
}

func (c *myConfig) Marshal() ([]byte, error) { return json.Marshal(c) }
func (c *myConfig) Unmarshal(b []byte) error { return json.Unmarshal(b, c) }

func (c *myConfig) Validate() error {
	if c.Number < 0 {
		return errors.Wrap(errors.ErrInput, "negative number")
	}
	return nil
}

func TestSaveLoad(t *testing.T) {
	cases := map[string]struct {
		Conf        *myConfig
		WantSaveErr *errors.Error
	}{
		"valid": {
			Conf: &myConfig{Number: 852151421, Text: "foobar"},
		},
		"zero value": {
			Conf: &myConfig{},
		},
		"invalid configuration cannot be saved": {
			Conf:        &myConfig{Number: -1},
			WantSaveErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			if err := Save(db, "mypkg", tc.Conf); !tc.WantSaveErr.Is(err) {
				t.Fatalf("unexpected save error: %s", err)
			}
			if tc.WantSaveErr != nil {
				if err := Load(db, "mypkg", &myConfig{}); !errors.ErrNotFound.Is(err) {
					t.Fatalf("invalid configuration was stored: %v", err)
				}
				return
			}

			var got myConfig
			assert.Nil(t, Load(db, "mypkg", &got))
			assert.Equal(t, tc.Conf, &got)
		})
	}
}

func TestLoadMissing(t *testing.T) {
	db := store.MemStore()
	assert.Nil(t, Save(db, "other", &myConfig{Number: 1}))

	var c myConfig
	if err := Load(db, "mypkg", &c); !errors.ErrNotFound.Is(err) {
		t.Fatalf("want not found, got %v", err)
	}
}

func TestInitConfig(t *testing.T) {
	cases := map[string]struct {
		Genesis string
		WantErr *errors.Error
		Want    *myConfig
	}{
		"configuration present": {
			Genesis: `{"conf": {"mypkg": {"number": 7, "text": "x"}}}`,
			Want:    &myConfig{Number: 7, Text: "x"},
		},
		"missing package": {
			Genesis: `{"conf": {"other": {}}}`,
			WantErr: errors.ErrNotFound,
		},
		"missing conf section": {
			Genesis: `{}`,
			WantErr: errors.ErrNotFound,
		},
		"invalid configuration": {
			Genesis: `{"conf": {"mypkg": {"number": -4}}}`,
			WantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var opts pairswap.Options
			assert.Nil(t, json.Unmarshal([]byte(tc.Genesis), &opts))

			db := store.MemStore()
			err := InitConfig(db, opts, "mypkg", &myConfig{})
			assert.IsErr(t, tc.WantErr, err)
			if tc.WantErr != nil {
				return
			}
			var got myConfig
			assert.Nil(t, Load(db, "mypkg", &got))
			assert.Equal(t, tc.Want, &got)
		})
	}
}
