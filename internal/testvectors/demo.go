package testvectors

// デモモデル用に外部で生成された入力ベクトル。値はそのまま保持し、再生成しない。

const (
	// NTestVectors はデモセットに含まれるベクトル数
	NTestVectors = 5
	// VectorLength は各ベクトルの要素数
	VectorLength = 10
)

// DemoSetName は組み込みセットの名前
const DemoSetName = "demo"

var demoTestInput0 = [VectorLength]float32{
	-0.16711809, 0.14671369, 1.20650899, -0.81693566, 0.36867329, -0.39333880, 0.02874482, 1.27845192,
	0.19109906, 0.04643655,
}

var demoTestInput1 = [VectorLength]float32{
	-1.35985613, 0.74625355, 0.64548421, 2.16325474, -0.30777824, 0.21915033, 0.24938369, 1.57745326,
	-0.09529553, 0.27902153,
}

var demoTestInput2 = [VectorLength]float32{
	0.60789651, 0.18660912, -0.44643360, 0.19408999, 1.07363176, -1.02651525, 0.13296968, -0.70012081,
	1.19504666, -1.52318692,
}

var demoTestInput3 = [VectorLength]float32{
	-0.55892187, 0.37721187, 1.56552398, -0.06575026, -0.55519950, 1.88115704, -1.44801390, -2.19880605,
	0.44001445, -0.50205421,
}

var demoTestInput4 = [VectorLength]float32{
	-1.02123284, 0.70835644, 0.24380071, -0.56407863, -1.28030443, 0.87245733, 0.65020120, -0.09917586,
	1.84663701, -1.07008481,
}

var demoTestInputs = [NTestVectors]*[VectorLength]float32{
	&demoTestInput0,
	&demoTestInput1,
	&demoTestInput2,
	&demoTestInput3,
	&demoTestInput4,
}

var demoSet = newDemoSet()

func newDemoSet() *Set {
	vectors := make([][]float32, NTestVectors)
	for i, v := range demoTestInputs {
		vectors[i] = v[:]
	}
	set, err := NewSet(DemoSetName, vectors)
	if err != nil {
		panic(err)
	}
	return set
}

// Demo は組み込みのデモセットを返します。読み取り専用なので複数のgoroutineから参照できます。
func Demo() *Set {
	return demoSet
}

// Get はデモセットの index 番目のベクトルのコピーを返します。
// 範囲外の場合は ErrOutOfRange にマッチするエラーを返します。
func Get(index int) ([]float32, error) {
	return demoSet.Vector(index)
}

// Count はデモセットのベクトル数を返します
func Count() int {
	return demoSet.Len()
}
