package main

import "github.com/goccy/go-json"

// connect使用的JSON编解码，消息为普通的Go结构体
// 名称为"json"，对应Content-Type application/json
type jsonCodec struct{}

func (jsonCodec) Name() string {
	return "json"
}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}
