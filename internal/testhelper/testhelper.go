package testhelper

import (
	"testing"

	"github.com/yammerjp/demovectors/internal/testvectors"
	"github.com/yammerjp/demovectors/internal/util"
)

// 2進数で正確に表せる値なので、base64表現も固定できる
var VecDummy1 = util.EmbeddedVectorFloat32{0.125, 0.25, 0.5}
var VecDummy2 = util.EmbeddedVectorFloat32{0.375, 0.75, 0.875}
var VecDummy3 = util.EmbeddedVectorFloat32{0.875, 0.9375, 0.15625}
var VecDummy4 = util.EmbeddedVectorFloat32{0.15625, 0.5, 0.875}

const Base64Dummy1 = util.EmbeddedVectorBase64("AAAAPgAAgD4AAAA/")
const Base64Dummy2 = util.EmbeddedVectorBase64("AADAPgAAQD8AAGA/")
const Base64Dummy3 = util.EmbeddedVectorBase64("AABgPwAAcD8AACA+")
const Base64Dummy4 = util.EmbeddedVectorBase64("AAAgPgAAAD8AAGA/")

// DummySet は VecDummy1..4 からなる4x3のセットを返します
func DummySet(t *testing.T) *testvectors.Set {
	t.Helper()
	set, err := testvectors.NewSet("dummy", [][]float32{VecDummy1, VecDummy2, VecDummy3, VecDummy4})
	if err != nil {
		t.Fatalf("failed to build dummy set: %v", err)
	}
	return set
}

// DemoVectors は組み込みデモセットの全ベクトルのコピーを返します
func DemoVectors(t *testing.T) [][]float32 {
	t.Helper()
	return testvectors.Demo().Vectors()
}
