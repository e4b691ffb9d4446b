package util

// EmbeddedVectorFloat32 はfloat32のベクトル
type EmbeddedVectorFloat32 []float32

// EmbeddedVectorBase64 はリトルエンディアンのfloat32列をbase64化した文字列
type EmbeddedVectorBase64 string
