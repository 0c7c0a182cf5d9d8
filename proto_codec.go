package versioned

import (
	"encoding/json"
	"fmt"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// ProtoMarshal encodes a value as a protobuf google.protobuf.Value. It can be
// used as RemoteConfig.Marshal or Options.Marshal for elements that are nil,
// bools, numbers, strings, []interface{} or map[string]interface{}. Numbers
// are carried as doubles.
func ProtoMarshal(v interface{}) ([]byte, error) {
	pv, err := structpb.NewValue(v)
	if err != nil {
		return nil, fmt.Errorf("structpb: %w", err)
	}
	return proto.Marshal(pv)
}

// ProtoUnmarshal decodes bytes produced by ProtoMarshal into the value
// pointed to by out.
func ProtoUnmarshal(b []byte, out interface{}) error {
	var pv structpb.Value
	if err := proto.Unmarshal(b, &pv); err != nil {
		return fmt.Errorf("unmarshal proto: %w", err)
	}
	j, err := protojson.Marshal(&pv)
	if err != nil {
		return fmt.Errorf("protojson: %w", err)
	}
	return json.Unmarshal(j, out)
}
