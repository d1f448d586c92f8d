package classifier

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"google.golang.org/protobuf/encoding/protowire"
)

// StateVersion is the schema version written by Save.
//
// The encoding is the protobuf wire format of
//
//	message State { uint32 version = 1; repeated Class classes = 2; }
//	message Class {
//	  string key = 1;
//	  uint64 count = 2;
//	  uint64 upper_count = 3;
//	  uint64 abbr_count = 4;
//	  repeated string surface_forms = 5;
//	}
const StateVersion = 1

const (
	stateVersionField = 1
	stateClassesField = 2

	classKeyField          = 1
	classCountField        = 2
	classUpperCountField   = 3
	classAbbrCountField    = 4
	classSurfaceFormsField = 5
)

// Save writes the classifier state to w. Classes are written in key order,
// so equal classifiers produce identical bytes.
func (c *Classifier) Save(w io.Writer) error {
	var b []byte
	b = protowire.AppendTag(b, stateVersionField, protowire.VarintType)
	b = protowire.AppendVarint(b, StateVersion)

	for _, tc := range c.Classes() {
		b = protowire.AppendTag(b, stateClassesField, protowire.BytesType)
		b = protowire.AppendBytes(b, marshalClass(tc))
	}

	if _, err := w.Write(b); err != nil {
		return fmt.Errorf("writing classifier state: %w", err)
	}
	return nil
}

func marshalClass(tc TokenClass) []byte {
	var b []byte
	b = protowire.AppendTag(b, classKeyField, protowire.BytesType)
	b = protowire.AppendString(b, tc.Key)
	b = protowire.AppendTag(b, classCountField, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(tc.Count))
	b = protowire.AppendTag(b, classUpperCountField, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(tc.UpperCount))
	b = protowire.AppendTag(b, classAbbrCountField, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(tc.AbbrCount))
	for _, s := range tc.SurfaceForms {
		b = protowire.AppendTag(b, classSurfaceFormsField, protowire.BytesType)
		b = protowire.AppendString(b, s)
	}
	return b
}

// Load reads a classifier state written by Save. The returned error wraps
// ErrCorrupt when the data cannot be decoded.
func Load(r io.Reader, opts ...Option) (*Classifier, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading classifier state: %w", err)
	}

	c := New(opts...)
	if err := c.unmarshal(data); err != nil {
		return nil, err
	}

	c.logger.Debug("classifier loaded", "classes", len(c.classes), "occurrences", c.total)
	return c, nil
}

func (c *Classifier) unmarshal(b []byte) error {
	version := -1
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return corrupt("state tag", protowire.ParseError(n))
		}
		b = b[n:]

		switch {
		case num == stateVersionField && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return corrupt("version", protowire.ParseError(n))
			}
			if v != StateVersion {
				return fmt.Errorf("%w: unsupported version %d", ErrCorrupt, v)
			}
			version = int(v)
			b = b[n:]

		case num == stateClassesField && typ == protowire.BytesType:
			raw, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return corrupt("class", protowire.ParseError(n))
			}
			tc, err := unmarshalClass(raw)
			if err != nil {
				return err
			}
			if _, dup := c.classes[tc.Key]; dup {
				return fmt.Errorf("%w: duplicate key %q", ErrCorrupt, tc.Key)
			}
			c.classes[tc.Key] = tc
			c.total += tc.Count
			b = b[n:]

		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return corrupt("unknown field", protowire.ParseError(n))
			}
			b = b[n:]
		}
	}

	if version < 0 {
		return fmt.Errorf("%w: missing version", ErrCorrupt)
	}
	return nil
}

func unmarshalClass(b []byte) (*TokenClass, error) {
	tc := &TokenClass{}
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, corrupt("class tag", protowire.ParseError(n))
		}
		b = b[n:]

		switch {
		case num == classKeyField && typ == protowire.BytesType,
			num == classSurfaceFormsField && typ == protowire.BytesType:
			s, n := protowire.ConsumeString(b)
			if n < 0 {
				return nil, corrupt("class string", protowire.ParseError(n))
			}
			if num == classKeyField {
				tc.Key = s
			} else {
				tc.SurfaceForms = append(tc.SurfaceForms, s)
			}
			b = b[n:]

		case (num == classCountField || num == classUpperCountField || num == classAbbrCountField) &&
			typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return nil, corrupt("class count", protowire.ParseError(n))
			}
			switch num {
			case classCountField:
				tc.Count = int(v)
			case classUpperCountField:
				tc.UpperCount = int(v)
			default:
				tc.AbbrCount = int(v)
			}
			b = b[n:]

		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return nil, corrupt("unknown class field", protowire.ParseError(n))
			}
			b = b[n:]
		}
	}

	// AbbrCount is not bounded by Count.
	if tc.UpperCount > tc.Count {
		return nil, fmt.Errorf("%w: class %q upper count exceeds occurrences", ErrCorrupt, tc.Key)
	}
	return tc, nil
}

func corrupt(what string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrCorrupt, what, err)
}

// SaveFile writes the classifier state to path atomically.
func (c *Classifier) SaveFile(path string) error {
	var buf bytes.Buffer
	if err := c.Save(&buf); err != nil {
		return err
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("writing classifier file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing classifier file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("renaming classifier file: %w", err)
	}

	c.logger.Info("classifier saved", "path", path, "classes", c.Size())
	return nil
}

// LoadFile reads a classifier state from path. A missing file yields an
// error wrapping ErrNotFound.
func LoadFile(path string, opts ...Option) (*Classifier, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("opening classifier file: %w", err)
	}
	defer f.Close()

	c, err := Load(f, opts...)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return c, nil
}
