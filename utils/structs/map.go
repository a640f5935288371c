package structs

import (
	"bufio"
	"encoding"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/tuneinsight/gofhe/utils/buffer"
)

// Map is a generic type wrapping a map from a key K to a pointer to a value of type V,
// together with serialization helpers. K must be one of the builtin integer types.
// V must implement CopyNewer, BinarySizer, encoding.BinaryMarshaler and encoding.BinaryUnmarshaler.
type Map[K comparable, V any] map[K]*V

// CopyNew returns a deep copy of the map.
func (m Map[K, V]) CopyNew() (mcpy Map[K, V]) {
	mcpy = make(Map[K, V], len(m))
	for k, v := range m {
		copyNewer, ok := any(v).(CopyNewer[V])
		if !ok {
			panic(fmt.Errorf("map value of type %T does not comply to %T", v, new(CopyNewer[V])))
		}
		mcpy[k] = copyNewer.CopyNew()
	}
	return
}

func mapKeyToUint64[K comparable](k K) uint64 {
	switch k := any(k).(type) {
	case uint64:
		return k
	case uint32:
		return uint64(k)
	case uint16:
		return uint64(k)
	case uint8:
		return uint64(k)
	case uint:
		return uint64(k)
	case int64:
		return uint64(k)
	case int32:
		return uint64(k)
	case int16:
		return uint64(k)
	case int8:
		return uint64(k)
	case int:
		return uint64(k)
	default:
		panic(fmt.Errorf("map key of type %T is not a supported integer type", k))
	}
}

func uint64ToMapKey[K comparable](v uint64) (k K) {
	switch any(k).(type) {
	case uint64:
		return any(v).(K)
	case uint32:
		return any(uint32(v)).(K)
	case uint16:
		return any(uint16(v)).(K)
	case uint8:
		return any(uint8(v)).(K)
	case uint:
		return any(uint(v)).(K)
	case int64:
		return any(int64(v)).(K)
	case int32:
		return any(int32(v)).(K)
	case int16:
		return any(int16(v)).(K)
	case int8:
		return any(int8(v)).(K)
	case int:
		return any(int(v)).(K)
	default:
		panic(fmt.Errorf("map key of type %T is not a supported integer type", k))
	}
}

// BinarySize returns the serialized size of the map in bytes.
func (m Map[K, V]) BinarySize() (size int) {
	size = 8
	for _, v := range m {
		sizer, ok := any(v).(BinarySizer)
		if !ok {
			panic(fmt.Errorf("map value of type %T does not comply to %T", v, new(BinarySizer)))
		}
		size += 8 + 8 + sizer.BinarySize()
	}
	return
}

// MarshalBinary encodes the map into a newly allocated slice of bytes.
func (m Map[K, V]) MarshalBinary() (p []byte, err error) {
	p = make([]byte, m.BinarySize())
	_, err = m.Read(p)
	return
}

// UnmarshalBinary decodes a slice of bytes generated by MarshalBinary into the target map.
func (m *Map[K, V]) UnmarshalBinary(p []byte) (err error) {
	_, err = m.Write(p)
	return
}

// Read encodes the map on the pre-allocated slice p and returns the number of bytes written.
func (m Map[K, V]) Read(p []byte) (n int, err error) {

	binary.LittleEndian.PutUint64(p[n:], uint64(len(m)))
	n += 8

	for k, v := range m {

		binary.LittleEndian.PutUint64(p[n:], mapKeyToUint64(k))
		n += 8

		marshaler, ok := any(v).(encoding.BinaryMarshaler)
		if !ok {
			return n, fmt.Errorf("map value of type %T does not comply to encoding.BinaryMarshaler", v)
		}

		var data []byte
		if data, err = marshaler.MarshalBinary(); err != nil {
			return n, err
		}

		binary.LittleEndian.PutUint64(p[n:], uint64(len(data)))
		n += 8

		n += copy(p[n:], data)
	}

	return
}

// Write decodes the slice of bytes p, generated by Read or MarshalBinary, into the target map.
func (m *Map[K, V]) Write(p []byte) (n int, err error) {

	size := int(binary.LittleEndian.Uint64(p[n:]))
	n += 8

	*m = make(Map[K, V], size)

	for i := 0; i < size; i++ {

		k := uint64ToMapKey[K](binary.LittleEndian.Uint64(p[n:]))
		n += 8

		dataLen := int(binary.LittleEndian.Uint64(p[n:]))
		n += 8

		v := new(V)
		unmarshaler, ok := any(v).(encoding.BinaryUnmarshaler)
		if !ok {
			return n, fmt.Errorf("map value of type %T does not comply to encoding.BinaryUnmarshaler", v)
		}

		if err = unmarshaler.UnmarshalBinary(p[n : n+dataLen]); err != nil {
			return n, err
		}

		n += dataLen

		(*m)[k] = v
	}

	return
}

// WriteTo streams the map on an io.Writer, entry by entry.
func (m Map[K, V]) WriteTo(w io.Writer) (n int64, err error) {
	switch w := w.(type) {
	case buffer.Writer:

		var inc64 int64
		if inc64, err = buffer.WriteAsUint64[int](w, len(m)); err != nil {
			return inc64, err
		}
		n += inc64

		for k, v := range m {

			if inc64, err = buffer.WriteUint64(w, mapKeyToUint64(k)); err != nil {
				return n + inc64, err
			}
			n += inc64

			marshaler, ok := any(v).(encoding.BinaryMarshaler)
			if !ok {
				return n, fmt.Errorf("map value of type %T does not comply to encoding.BinaryMarshaler", v)
			}

			var data []byte
			if data, err = marshaler.MarshalBinary(); err != nil {
				return n, err
			}

			if inc64, err = buffer.WriteAsUint64[int](w, len(data)); err != nil {
				return n + inc64, err
			}
			n += inc64

			if inc64, err = buffer.Write(w, data); err != nil {
				return n + inc64, err
			}
			n += inc64
		}

		return n, w.Flush()

	default:
		return m.WriteTo(bufio.NewWriter(w))
	}
}

// ReadFrom streams a map from an io.Reader, entry by entry.
func (m *Map[K, V]) ReadFrom(r io.Reader) (n int64, err error) {
	switch r := r.(type) {
	case buffer.Reader:

		var inc64 int64
		var size int
		if inc64, err = buffer.ReadAsUint64[int](r, &size); err != nil {
			return inc64, err
		}
		n += inc64

		*m = make(Map[K, V], size)

		for i := 0; i < size; i++ {

			var key uint64
			if inc64, err = buffer.ReadAsUint64[uint64](r, &key); err != nil {
				return n + inc64, err
			}
			n += inc64

			var dataLen int
			if inc64, err = buffer.ReadAsUint64[int](r, &dataLen); err != nil {
				return n + inc64, err
			}
			n += inc64

			data := make([]byte, dataLen)
			var read int
			if read, err = io.ReadFull(r, data); err != nil {
				return n + int64(read), err
			}
			n += int64(read)

			v := new(V)
			unmarshaler, ok := any(v).(encoding.BinaryUnmarshaler)
			if !ok {
				return n, fmt.Errorf("map value of type %T does not comply to encoding.BinaryUnmarshaler", v)
			}

			if err = unmarshaler.UnmarshalBinary(data); err != nil {
				return n, err
			}

			(*m)[uint64ToMapKey[K](key)] = v
		}

		return n, nil

	default:
		return m.ReadFrom(bufio.NewReader(r))
	}
}
