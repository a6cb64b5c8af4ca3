package cache

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEntityKey(t *testing.T) {
	assert.Equal(t, "course:CS101", EntityKey("course", "CS101"))
	assert.Equal(t, "student:42", EntityKey("student", "42"))
}

func TestListKey_OrderIndependent(t *testing.T) {
	a, _ := url.ParseQuery("page=1&size=10&department=CS")
	b, _ := url.ParseQuery("department=CS&size=10&page=1")

	assert.Equal(t, ListKey("course", a), ListKey("course", b))
}

func TestListKey_DifferentQueriesDiffer(t *testing.T) {
	a, _ := url.ParseQuery("page=1&size=10")
	b, _ := url.ParseQuery("page=2&size=10")

	assert.NotEqual(t, ListKey("course", a), ListKey("course", b))
}

func TestListKey_EntityNamespaces(t *testing.T) {
	q, _ := url.ParseQuery("page=1")

	assert.NotEqual(t, ListKey("course", q), ListKey("student", q))
}

func TestFingerprint_Stable(t *testing.T) {
	assert.Equal(t, Fingerprint("page=1&size=10"), Fingerprint("page=1&size=10"))
	assert.NotEqual(t, Fingerprint("a"), Fingerprint("b"))
	assert.Len(t, Fingerprint(""), 64)
}
