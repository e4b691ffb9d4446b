package export

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/yammerjp/demovectors/internal/testvectors"
)

const (
	// 1行あたりの値の数
	headerValuesPerLine = 8
	headerDecimals      = 8
)

var (
	ErrInvalidName     = errors.New("set name is not a valid C identifier")
	ErrMalformedHeader = errors.New("malformed test vector header")
)

var (
	identRe      = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	countRe      = regexp.MustCompile(`^#define\s+([A-Za-z_][A-Za-z0-9_]*)_N_TEST_VECTORS\s+(\d+)\s*$`)
	arrayStartRe = regexp.MustCompile(`^static\s+const\s+float\s+([A-Za-z_][A-Za-z0-9_]*)_test_input_(\d+)\[(\d+)\]\s*=\s*\{(.*)$`)
)

// WriteHeader は set をC言語のヘッダとして書き出します。
// 値は小数点以下8桁で出力し、コンパイル後のデータは元のfloat32とビット単位で一致します。
func WriteHeader(w io.Writer, set *testvectors.Set) error {
	name := set.Name()
	if !identRe.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	prefix := strings.ToLower(name)
	macro := strings.ToUpper(name)

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "/* Auto-generated test vectors for %s model */\n\n", prefix)
	fmt.Fprintf(bw, "#ifndef %s_TEST_VECTORS_H\n", macro)
	fmt.Fprintf(bw, "#define %s_TEST_VECTORS_H\n\n", macro)
	fmt.Fprintf(bw, "#define %s_N_TEST_VECTORS %d\n", macro, set.Len())

	for i, v := range set.Vectors() {
		fmt.Fprintf(bw, "\n/* Test input %d */\n", i)
		fmt.Fprintf(bw, "static const float %s_test_input_%d[%d] = {\n", prefix, i, len(v))
		for start := 0; start < len(v); start += headerValuesPerLine {
			end := min(start+headerValuesPerLine, len(v))
			items := make([]string, 0, end-start)
			for _, x := range v[start:end] {
				items = append(items, formatHeaderValue(x))
			}
			line := "    " + strings.Join(items, ", ")
			if end < len(v) {
				line += ","
			}
			fmt.Fprintln(bw, line)
		}
		fmt.Fprintln(bw, "};")
	}

	fmt.Fprintf(bw, "\n#endif /* %s_TEST_VECTORS_H */\n", macro)
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	return nil
}

// 小数点以下8桁で出力する。8桁で同じfloat32に戻らない値だけ最短表現にする。
// 正の値は符号の位置を空白で埋めて桁を揃える
func formatHeaderValue(v float32) string {
	s := strconv.FormatFloat(float64(v), 'f', headerDecimals, 32)
	if parsed, err := strconv.ParseFloat(s, 32); err != nil || float32(parsed) != v {
		s = strconv.FormatFloat(float64(v), 'f', -1, 32)
		if !strings.Contains(s, ".") {
			s += ".0"
		}
	}
	if !strings.HasPrefix(s, "-") {
		s = " " + s
	}
	return s + "f"
}

type headerArray struct {
	index  int
	length int
	values []float32
}

// ParseHeader は WriteHeader と同じレイアウトのヘッダを読み込みます。
// 宣言されたベクトル数と各配列の長さが実データと一致しない場合はエラーになります。
func ParseHeader(r io.Reader) (*testvectors.Set, error) {
	scanner := bufio.NewScanner(r)

	declaredCount := -1
	var macro, prefix string
	var arrays []*headerArray
	var current *headerArray
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())

		if current != nil {
			body, closed := strings.CutSuffix(line, "};")
			if err := appendHeaderValues(current, body); err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedHeader, lineNo, err)
			}
			if closed {
				current = nil
			}
			continue
		}

		if m := countRe.FindStringSubmatch(line); m != nil {
			n, err := strconv.Atoi(m[2])
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedHeader, lineNo, err)
			}
			macro, declaredCount = m[1], n
			continue
		}

		m := arrayStartRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		if prefix == "" {
			prefix = m[1]
		} else if prefix != m[1] {
			return nil, fmt.Errorf("%w: line %d: array prefix %q differs from %q", ErrMalformedHeader, lineNo, m[1], prefix)
		}
		index, _ := strconv.Atoi(m[2])
		length, _ := strconv.Atoi(m[3])
		if index != len(arrays) {
			return nil, fmt.Errorf("%w: line %d: expected test input %d, got %d", ErrMalformedHeader, lineNo, len(arrays), index)
		}

		current = &headerArray{index: index, length: length}
		arrays = append(arrays, current)

		// 宣言と同じ行に値や閉じ括弧が続く場合
		rest := strings.TrimSpace(m[4])
		body, closed := strings.CutSuffix(rest, "};")
		if err := appendHeaderValues(current, body); err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedHeader, lineNo, err)
		}
		if closed {
			current = nil
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	if current != nil {
		return nil, fmt.Errorf("%w: test input %d is not terminated", ErrMalformedHeader, current.index)
	}
	if declaredCount < 0 {
		return nil, fmt.Errorf("%w: missing _N_TEST_VECTORS define", ErrMalformedHeader)
	}
	if !strings.EqualFold(macro, prefix) {
		return nil, fmt.Errorf("%w: count macro prefix %q does not match arrays %q", ErrMalformedHeader, macro, prefix)
	}
	if declaredCount != len(arrays) {
		return nil, fmt.Errorf("%w: declared %d test vectors, found %d", ErrMalformedHeader, declaredCount, len(arrays))
	}

	vectors := make([][]float32, len(arrays))
	for i, a := range arrays {
		if len(a.values) != a.length {
			return nil, fmt.Errorf("%w: test input %d declares %d values, found %d", ErrMalformedHeader, i, a.length, len(a.values))
		}
		vectors[i] = a.values
	}

	set, err := testvectors.NewSet(strings.ToLower(prefix), vectors)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedHeader, err)
	}
	return set, nil
}

func appendHeaderValues(a *headerArray, body string) error {
	for _, field := range strings.Split(body, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		field = strings.TrimRight(field, "fF")
		v, err := strconv.ParseFloat(field, 32)
		if err != nil {
			return fmt.Errorf("invalid value %q in test input %d", field, a.index)
		}
		a.values = append(a.values, float32(v))
	}
	return nil
}
