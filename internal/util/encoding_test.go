package util_test

import (
	"reflect"
	"testing"

	"github.com/yammerjp/demovectors/internal/testhelper"
	"github.com/yammerjp/demovectors/internal/util"
)

func TestFloat32ToBase64(t *testing.T) {
	tests := []struct {
		name string
		vec  util.EmbeddedVectorFloat32
		want util.EmbeddedVectorBase64
	}{
		{name: "dummy 1", vec: testhelper.VecDummy1, want: testhelper.Base64Dummy1},
		{name: "dummy 2", vec: testhelper.VecDummy2, want: testhelper.Base64Dummy2},
		{name: "dummy 3", vec: testhelper.VecDummy3, want: testhelper.Base64Dummy3},
		{name: "empty", vec: util.EmbeddedVectorFloat32{}, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := util.Float32ToBase64(tt.vec)
			if got != tt.want {
				t.Errorf("Float32ToBase64() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBase64ToFloat32Slice(t *testing.T) {
	tests := []struct {
		name    string
		b64     util.EmbeddedVectorBase64
		want    util.EmbeddedVectorFloat32
		wantErr bool
	}{
		{name: "dummy 1", b64: testhelper.Base64Dummy1, want: testhelper.VecDummy1},
		{name: "dummy 4", b64: testhelper.Base64Dummy4, want: testhelper.VecDummy4},
		{name: "invalid base64", b64: "not base64!", wantErr: true},
		// 5バイトは4の倍数ではない
		{name: "invalid length", b64: "AAAAAAA=", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := util.Base64ToFloat32Slice(tt.b64)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Base64ToFloat32Slice() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Base64ToFloat32Slice() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBlobPreservesBits(t *testing.T) {
	set := testhelper.DemoVectors(t)
	for i, v := range set {
		got, err := util.BlobToFloat32Slice(util.Float32ToBlob(v))
		if err != nil {
			t.Fatalf("vector %d: %v", i, err)
		}
		if !reflect.DeepEqual(util.EmbeddedVectorFloat32(v), got) {
			t.Errorf("vector %d: got %v, want %v", i, got, v)
		}
	}
}
