package boards

import "github.com/mitchellh/mapstructure"

// maxRecords caps how many records one board contributes per sweep.
const maxRecords = 50

// decodeRecords maps loosely-typed API items onto a typed record slice. The
// boards are inconsistent about numeric versus string fields, so decoding is
// weakly typed.
func decodeRecords(items any, out any) error {
	cfg := &mapstructure.DecoderConfig{
		Result:           out,
		TagName:          "json",
		WeaklyTypedInput: true,
	}
	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return err
	}
	return decoder.Decode(items)
}

func capRecords[T any](items []T) []T {
	if len(items) > maxRecords {
		return items[:maxRecords]
	}
	return items
}
