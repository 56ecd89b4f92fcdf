package cpu

import (
	"math"
	"testing"

	"github.com/born-ml/graph4kg/internal/parallel"
	"github.com/born-ml/graph4kg/internal/tensor"
)

var _ tensor.Backend = (*CPUBackend)(nil)

func rawF64(t *testing.T, shape tensor.Shape, values ...float64) *tensor.RawTensor {
	t.Helper()
	r, err := tensor.NewRaw(shape, tensor.Float64, tensor.CPU)
	if err != nil {
		t.Fatalf("NewRaw: %v", err)
	}
	copy(r.AsFloat64(), values)
	return r
}

func assertClose(t *testing.T, got, want []float64, tol float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}
	for i := range got {
		if math.Abs(got[i]-want[i]) > tol {
			t.Errorf("index %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestAdd_SameShape(t *testing.T) {
	backend := New()
	a := rawF64(t, tensor.Shape{2, 2}, 1, 2, 3, 4)
	b := rawF64(t, tensor.Shape{2, 2}, 10, 20, 30, 40)

	result := backend.Add(a, b)

	assertClose(t, result.AsFloat64(), []float64{11, 22, 33, 44}, 0)
	// Inputs are never mutated.
	assertClose(t, a.AsFloat64(), []float64{1, 2, 3, 4}, 0)
}

func TestSub_Broadcast(t *testing.T) {
	backend := New()
	a := rawF64(t, tensor.Shape{2, 3}, 1, 2, 3, 4, 5, 6)
	b := rawF64(t, tensor.Shape{3}, 1, 1, 1)

	result := backend.Sub(a, b)

	if !result.Shape().Equal(tensor.Shape{2, 3}) {
		t.Fatalf("Expected shape [2, 3], got %v", result.Shape())
	}
	assertClose(t, result.AsFloat64(), []float64{0, 1, 2, 3, 4, 5}, 0)
}

func TestMul_OuterBroadcast(t *testing.T) {
	backend := New()
	a := rawF64(t, tensor.Shape{2, 1}, 2, 3)
	b := rawF64(t, tensor.Shape{1, 3}, 1, 10, 100)

	result := backend.Mul(a, b)

	if !result.Shape().Equal(tensor.Shape{2, 3}) {
		t.Fatalf("Expected shape [2, 3], got %v", result.Shape())
	}
	assertClose(t, result.AsFloat64(), []float64{2, 20, 200, 3, 30, 300}, 0)
}

func TestDiv_Int64(t *testing.T) {
	backend := New()
	a, _ := tensor.NewRaw(tensor.Shape{3}, tensor.Int64, tensor.CPU)
	copy(a.AsInt64(), []int64{10, 21, 33})
	b, _ := tensor.NewRaw(tensor.Shape{1}, tensor.Int64, tensor.CPU)
	b.AsInt64()[0] = 10

	got := backend.Div(a, b).AsInt64()
	want := []int64{1, 2, 3}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d: got %d, want %d", i, got[i], want[i])
		}
	}
}

func TestBinary_IncompatibleShapesPanics(t *testing.T) {
	backend := New()
	a := rawF64(t, tensor.Shape{2, 3}, 1, 2, 3, 4, 5, 6)
	b := rawF64(t, tensor.Shape{2}, 1, 2)

	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic for incompatible shapes")
		}
	}()
	backend.Add(a, b)
}

func TestBinary_ParallelMatchesSequential(t *testing.T) {
	n := 5000
	values := make([]float64, n)
	for i := range values {
		values[i] = float64(i) * 0.5
	}
	a := rawF64(t, tensor.Shape{n / 50, 50}, values...)
	b := rawF64(t, tensor.Shape{50}, values[:50]...)

	par := NewWithConfig(parallel.Config{Enabled: true, NumWorkers: 4, MinChunkSize: 16}).Mul(a, b)
	seq := NewWithConfig(parallel.Sequential()).Mul(a, b)

	assertClose(t, par.AsFloat64(), seq.AsFloat64(), 0)
}

func TestScalarOps(t *testing.T) {
	backend := New()
	x := rawF64(t, tensor.Shape{3}, 1, 2, 3)

	assertClose(t, backend.MulScalar(x, 2.0).AsFloat64(), []float64{2, 4, 6}, 0)
	assertClose(t, backend.AddScalar(x, 1.5).AsFloat64(), []float64{2.5, 3.5, 4.5}, 0)
	assertClose(t, backend.SubScalar(x, 1.0).AsFloat64(), []float64{0, 1, 2}, 0)
	assertClose(t, backend.DivScalar(x, 4.0).AsFloat64(), []float64{0.25, 0.5, 0.75}, 0)
	assertClose(t, backend.ClampMin(x, 2.0).AsFloat64(), []float64{2, 2, 3}, 0)
}

func TestScalarOps_Float32AcceptsFloat64Scalar(t *testing.T) {
	backend := New()
	x, _ := tensor.NewRaw(tensor.Shape{2}, tensor.Float32, tensor.CPU)
	copy(x.AsFloat32(), []float32{1, 2})

	got := backend.MulScalar(x, 0.5).AsFloat32()
	if got[0] != 0.5 || got[1] != 1 {
		t.Errorf("Expected [0.5 1], got %v", got)
	}
}

func TestMathOps(t *testing.T) {
	backend := New()
	x := rawF64(t, tensor.Shape{3}, 0, 1, 4)

	assertClose(t, backend.Exp(x).AsFloat64(), []float64{1, math.E, math.Exp(4)}, 1e-12)
	assertClose(t, backend.Sqrt(x).AsFloat64(), []float64{0, 1, 2}, 1e-12)
	assertClose(t, backend.Cos(x).AsFloat64(), []float64{1, math.Cos(1), math.Cos(4)}, 1e-12)
	assertClose(t, backend.Sin(x).AsFloat64(), []float64{0, math.Sin(1), math.Sin(4)}, 1e-12)

	neg := rawF64(t, tensor.Shape{2}, -3, 3)
	assertClose(t, backend.Abs(neg).AsFloat64(), []float64{3, 3}, 0)
	assertClose(t, backend.ReLU(neg).AsFloat64(), []float64{0, 3}, 0)

	logs := backend.Log(rawF64(t, tensor.Shape{2}, 1, math.E)).AsFloat64()
	assertClose(t, logs, []float64{0, 1}, 1e-12)
}

func TestMathOps_IntPanics(t *testing.T) {
	backend := New()
	x, _ := tensor.NewRaw(tensor.Shape{2}, tensor.Int32, tensor.CPU)

	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic for int32 exp")
		}
	}()
	backend.Exp(x)
}

func TestSigmoidFamily_Stable(t *testing.T) {
	backend := New()
	x := rawF64(t, tensor.Shape{5}, -1000, -1, 0, 1, 1000)

	sig := backend.Sigmoid(x).AsFloat64()
	assertClose(t, sig, []float64{0, 1 / (1 + math.E), 0.5, 1 / (1 + math.Exp(-1)), 1}, 1e-12)

	logSig := backend.LogSigmoid(x).AsFloat64()
	assertClose(t, logSig, []float64{-1000, math.Log(1 / (1 + math.E)), -math.Ln2, math.Log(1 / (1 + math.Exp(-1))), 0}, 1e-12)

	sp := backend.Softplus(x).AsFloat64()
	assertClose(t, sp, []float64{0, math.Log1p(math.Exp(-1)), math.Ln2, math.Log1p(math.E), 1000}, 1e-12)
}

func TestSoftmax_LastDim(t *testing.T) {
	backend := New()
	x := rawF64(t, tensor.Shape{2, 3}, 1, 2, 3, 1000, 1000, 1000)

	result := backend.Softmax(x, -1).AsFloat64()

	e1, e2, e3 := math.Exp(-2), math.Exp(-1), 1.0
	s := e1 + e2 + e3
	assertClose(t, result, []float64{e1 / s, e2 / s, e3 / s, 1.0 / 3, 1.0 / 3, 1.0 / 3}, 1e-12)
}

func TestSoftmax_FirstDim(t *testing.T) {
	backend := New()
	x := rawF64(t, tensor.Shape{2, 2}, 0, 0, 0, math.Log(3))

	result := backend.Softmax(x, 0).AsFloat64()

	assertClose(t, result, []float64{0.5, 0.25, 0.5, 0.75}, 1e-12)
}

func TestSoftmax_SingletonDimIsOne(t *testing.T) {
	backend := New()
	x := rawF64(t, tensor.Shape{3, 1}, -5, 0, 7)

	assertClose(t, backend.Softmax(x, -1).AsFloat64(), []float64{1, 1, 1}, 0)
}

func TestBatchMatMul(t *testing.T) {
	backend := New()
	// Batch of 2: identity and a 2x2 matrix.
	a := rawF64(t, tensor.Shape{2, 2, 2}, 1, 0, 0, 1, 1, 2, 3, 4)
	b := rawF64(t, tensor.Shape{2, 2, 3}, 1, 2, 3, 4, 5, 6, 1, 0, 1, 0, 1, 0)

	result := backend.BatchMatMul(a, b)

	if !result.Shape().Equal(tensor.Shape{2, 2, 3}) {
		t.Fatalf("Expected shape [2, 2, 3], got %v", result.Shape())
	}
	assertClose(t, result.AsFloat64(), []float64{
		1, 2, 3, 4, 5, 6,
		1, 2, 1, 3, 4, 3,
	}, 0)
}

func TestBatchMatMul_InnerMismatchPanics(t *testing.T) {
	backend := New()
	a := rawF64(t, tensor.Shape{1, 2, 3}, 1, 2, 3, 4, 5, 6)
	b := rawF64(t, tensor.Shape{1, 2, 3}, 1, 2, 3, 4, 5, 6)

	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic for inner dimension mismatch")
		}
	}()
	backend.BatchMatMul(a, b)
}
