package grpcapi

import (
	"math"
	"strconv"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/xtding233/grape-gamble/internal/preset"
	"github.com/xtding233/grape-gamble/internal/service"
)

// decodeRequest reads the request fields; absent fields stay unset.
// seed may be a number or a decimal string (Struct numbers are float64).
func decodeRequest(in *structpb.Struct) (service.Request, error) {
	f := in.GetFields()
	var (
		req service.Request
		o   preset.Overrides
		err error
	)
	if v, ok := f["preset"]; ok {
		s, isStr := v.GetKind().(*structpb.Value_StringValue)
		if !isStr {
			return service.Request{}, invalidField("preset")
		}
		req.Preset = s.StringValue
	}
	for key, dst := range map[string]**int{
		"pool_size":    &o.PoolSize,
		"poison_count": &o.PoisonCount,
		"draw_count":   &o.DrawCount,
		"round_count":  &o.RoundCount,
		"trials":       &o.Trials,
		"bins":         &o.Bins,
	} {
		if *dst, err = intField(f, key); err != nil {
			return service.Request{}, err
		}
	}
	if o.Diminishing, err = boolField(f, "diminishing_returns"); err != nil {
		return service.Request{}, err
	}
	if b, err := boolField(f, "include_outcomes"); err != nil {
		return service.Request{}, err
	} else if b != nil {
		req.IncludeOutcomes = *b
	}
	if req.Seed, err = seedField(f, "seed"); err != nil {
		return service.Request{}, err
	}
	req.Overrides = o
	return req, nil
}

func invalidField(key string) error {
	return status.Errorf(codes.InvalidArgument, "invalid %s", key)
}

func intField(f map[string]*structpb.Value, key string) (*int, error) {
	v, ok := f[key]
	if !ok {
		return nil, nil
	}
	n, isNum := v.GetKind().(*structpb.Value_NumberValue)
	if !isNum || n.NumberValue != math.Trunc(n.NumberValue) || math.Abs(n.NumberValue) > math.MaxInt32 {
		return nil, invalidField(key)
	}
	i := int(n.NumberValue)
	return &i, nil
}

func boolField(f map[string]*structpb.Value, key string) (*bool, error) {
	v, ok := f[key]
	if !ok {
		return nil, nil
	}
	b, isBool := v.GetKind().(*structpb.Value_BoolValue)
	if !isBool {
		return nil, invalidField(key)
	}
	return &b.BoolValue, nil
}

func seedField(f map[string]*structpb.Value, key string) (*uint64, error) {
	v, ok := f[key]
	if !ok {
		return nil, nil
	}
	switch k := v.GetKind().(type) {
	case *structpb.Value_NumberValue:
		if k.NumberValue < 0 || k.NumberValue != math.Trunc(k.NumberValue) || k.NumberValue > 1<<53 {
			return nil, invalidField(key)
		}
		s := uint64(k.NumberValue)
		return &s, nil
	case *structpb.Value_StringValue:
		s, err := strconv.ParseUint(k.StringValue, 10, 64)
		if err != nil {
			return nil, invalidField(key)
		}
		return &s, nil
	default:
		return nil, invalidField(key)
	}
}
