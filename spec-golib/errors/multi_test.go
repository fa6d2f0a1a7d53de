package errors

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCombineNil(t *testing.T) {
	err := New("error")
	require.Equal(t, err, Combine(err, nil))
	require.Equal(t, err, Combine(nil, err))
	require.Nil(t, Combine(nil, nil))
}

func TestCombineBasic(t *testing.T) {
	err0 := New("error0")
	err1 := New("error1")

	errs := Combine(err0, err1).(Errors)
	require.Len(t, errs, 2)
	require.Equal(t, err0, errs[0])
	require.Equal(t, err1, errs[1])
}

func TestCombineMulti(t *testing.T) {
	err0 := New("error0")
	err1 := New("error1")
	err2 := New("error2")

	errs := Combine(Combine(err0, err1), err2).(Errors)
	require.Len(t, errs, 3)
	require.Equal(t, err0, errs[0])
	require.Equal(t, err1, errs[1])
	require.Equal(t, err2, errs[2])
}

func TestCombineMessage(t *testing.T) {
	err := Combine(New("error0"), New("error1"))
	require.Equal(t, "error0\nerror1", err.Error())
}

func TestDefer(t *testing.T) {
	var err error
	Defer(&err, func() error { return nil })
	require.NoError(t, err)
	Defer(&err, func() error { return New("cleanup failed") })
	require.EqualError(t, err, "cleanup failed")
}
