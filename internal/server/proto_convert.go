package server

import (
	"encoding/json"
	"fmt"

	"github.com/gorilla/websocket"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// toProto converts a JSON-tagged message into a protobuf Struct with the
// same field names, so binary clients see the shape text clients do.
func toProto(v interface{}) (*structpb.Struct, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode %T: %w", v, err)
	}
	var fields map[string]interface{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("flatten %T: %w", v, err)
	}
	msg, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, fmt.Errorf("convert %T: %w", v, err)
	}
	return msg, nil
}

// fromProto decodes a binary client frame into the text envelope.
func fromProto(data []byte) (inboundMessage, error) {
	var in inboundMessage
	var msg structpb.Struct
	if err := proto.Unmarshal(data, &msg); err != nil {
		return in, fmt.Errorf("unmarshal frame: %w", err)
	}
	raw, err := json.Marshal(msg.AsMap())
	if err != nil {
		return in, fmt.Errorf("re-encode frame: %w", err)
	}
	if err := json.Unmarshal(raw, &in); err != nil {
		return in, fmt.Errorf("decode envelope: %w", err)
	}
	return in, nil
}

// sendProtoMessage sends payload as a binary WebSocket frame.
func sendProtoMessage(conn *websocket.Conn, payload proto.Message) error {
	data, err := proto.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal error: %w", err)
	}
	return conn.WriteMessage(websocket.BinaryMessage, data)
}
