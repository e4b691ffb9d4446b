package util

import (
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"math"
)

// Float32ToBlob はIEEE 754のfloat32をリトルエンディアンで並べたバイト列に変換します
func Float32ToBlob(values EmbeddedVectorFloat32) []byte {
	buf := make([]byte, len(values)*4)
	for i, v := range values {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	return buf
}

// BlobToFloat32Slice は Float32ToBlob の逆変換です
func BlobToFloat32Slice(data []byte) (EmbeddedVectorFloat32, error) {
	if len(data)%4 != 0 {
		return nil, fmt.Errorf("invalid data length: %d", len(data))
	}

	result := make([]float32, len(data)/4)
	for i := range result {
		result[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return EmbeddedVectorFloat32(result), nil
}

func Float32ToBase64(values EmbeddedVectorFloat32) EmbeddedVectorBase64 {
	return EmbeddedVectorBase64(base64.StdEncoding.EncodeToString(Float32ToBlob(values)))
}

func Base64ToFloat32Slice(b64 EmbeddedVectorBase64) (EmbeddedVectorFloat32, error) {
	data, err := base64.StdEncoding.DecodeString(string(b64))
	if err != nil {
		return nil, fmt.Errorf("failed to decode base64: %w", err)
	}
	return BlobToFloat32Slice(data)
}
