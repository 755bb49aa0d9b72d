// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package main

import (
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/tuplekey/tuple"
)

// parseElement parses one command-line element spec of the form
// "kind:value" (or bare "null") into a tuple.Element. This is operator
// shorthand, not part of the wire format: int:5, text:hello,
// bool:true, blob:deadbeef (hex), uuid:<32 hex chars>, null.
func parseElement(spec string) (tuple.Element, error) {
	if spec == "null" {
		return tuple.Null(), nil
	}
	kind, value, ok := strings.Cut(spec, ":")
	if !ok {
		return tuple.Element{}, errors.Newf("tuplekey: element %q missing \"kind:value\"", spec)
	}
	switch kind {
	case "int":
		v, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return tuple.Element{}, errors.Wrapf(err, "tuplekey: parsing int element %q", spec)
		}
		return tuple.Int(v), nil
	case "bool":
		v, err := strconv.ParseBool(value)
		if err != nil {
			return tuple.Element{}, errors.Wrapf(err, "tuplekey: parsing bool element %q", spec)
		}
		return tuple.Bool(v), nil
	case "text":
		return tuple.Text(value), nil
	case "blob":
		b, err := hex.DecodeString(value)
		if err != nil {
			return tuple.Element{}, errors.Wrapf(err, "tuplekey: parsing blob element %q", spec)
		}
		return tuple.Blob(b), nil
	case "uuid":
		b, err := hex.DecodeString(value)
		if err != nil || len(b) != 16 {
			return tuple.Element{}, errors.Newf("tuplekey: uuid element %q must be 32 hex characters", spec)
		}
		var u [16]byte
		copy(u[:], b)
		return tuple.UUID(u), nil
	default:
		return tuple.Element{}, errors.Newf("tuplekey: unknown element kind %q", kind)
	}
}

func parseTuple(specs []string) (tuple.Tuple, error) {
	t := make(tuple.Tuple, 0, len(specs))
	for _, s := range specs {
		e, err := parseElement(s)
		if err != nil {
			return nil, err
		}
		t = append(t, e)
	}
	return t, nil
}

// formatElement renders a decoded element back to the same "kind:value"
// shorthand parseElement accepts, for scan/unpack output. Timestamps render
// as "time:<unix millis>", a form parseElement does not accept.
func formatElement(e tuple.Element) string {
	switch e.Kind() {
	case tuple.KindNull:
		return "null"
	case tuple.KindBool:
		v, _ := e.AsBool()
		return "bool:" + strconv.FormatBool(v)
	case tuple.KindInt, tuple.KindNegInt:
		v, _ := e.AsInt()
		return "int:" + strconv.FormatInt(v, 10)
	case tuple.KindBlob:
		v, _ := e.AsBlob()
		return "blob:" + hex.EncodeToString(v)
	case tuple.KindText:
		v, _ := e.AsText()
		return "text:" + v
	case tuple.KindUUID:
		v, _ := e.AsUUID()
		return "uuid:" + hex.EncodeToString(v[:])
	case tuple.KindTime, tuple.KindNegTime:
		v, _ := e.AsTime()
		return "time:" + strconv.FormatInt(v.UnixMilli, 10)
	default:
		return "?"
	}
}
