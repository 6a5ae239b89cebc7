package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"gamepanel/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListServices(t *testing.T) {
	var gotToken string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotToken = r.URL.Query().Get("token")
		assert.Equal(t, "/service/list", r.URL.Path)
		json.NewEncoder(w).Encode([]map[string]interface{}{
			{"id": "svc-1", "name": "alpha", "type": "gameserver", "status": "running"},
			{"id": "svc-2", "productdisplay": "KVM Root Server", "status": "stopped"},
		})
	}))
	defer srv.Close()

	client := New(srv.URL, "test-key")
	services, err := client.ListServices(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "test-key", gotToken)
	require.Len(t, services, 2)
	assert.Equal(t, "svc-1", services[0].ID)
	assert.Equal(t, "alpha", services[0].DisplayName())
	assert.Equal(t, "KVM Root Server", services[1].DisplayName())
}

func TestListServices_DropsEntriesWithoutID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]map[string]interface{}{
			{"id": "svc-1", "name": "alpha"},
			{"name": "orphan without id"},
			{"id": "svc-3", "name": "gamma"},
		})
	}))
	defer srv.Close()

	client := New(srv.URL, "test-key")
	services, err := client.ListServices(context.Background())
	require.NoError(t, err)

	require.Len(t, services, 2)
	assert.Equal(t, "svc-1", services[0].ID)
	assert.Equal(t, "svc-3", services[1].ID)
}

func TestGetServiceDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/service/svc-1", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"service": map[string]interface{}{
				"id":             "svc-1",
				"productdisplay": "KVM Root Server",
				"daysleft":       12,
			},
			"product": map[string]interface{}{
				"hostname": "node-7.example.net",
				"cores":    8,
				"memory":   16384,
				"cputype":  "EPYC",
			},
		})
	}))
	defer srv.Close()

	client := New(srv.URL, "test-key")
	detail, err := client.GetServiceDetail(context.Background(), "svc-1")
	require.NoError(t, err)

	assert.Equal(t, "svc-1", detail.Service.ID)
	assert.Equal(t, 12, detail.Service.DaysLeft)
	assert.Equal(t, "node-7.example.net", detail.Product.Hostname)
	assert.Equal(t, 8, detail.Product.Cores)
	assert.Equal(t, 16384, detail.Product.MemoryMB)
}

func TestGetServiceStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/service/svc-1/status", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]string{"status": "running"})
	}))
	defer srv.Close()

	client := New(srv.URL, "test-key")
	status, err := client.GetServiceStatus(context.Background(), "svc-1")
	require.NoError(t, err)
	assert.Equal(t, StatusRunning, status)
}

func TestGetServiceStatus_EmptyBecomesUnknown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{})
	}))
	defer srv.Close()

	client := New(srv.URL, "test-key")
	status, err := client.GetServiceStatus(context.Background(), "svc-1")
	require.NoError(t, err)
	assert.Equal(t, StatusUnknown, status)
}

func TestReinstallService_SendsBody(t *testing.T) {
	var gotBody map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/service/svc-1/reinstall", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := New(srv.URL, "test-key")
	err := client.ReinstallService(context.Background(), "svc-1", "debian-12", "correct-horse")
	require.NoError(t, err)

	assert.Equal(t, "debian-12", gotBody["os"])
	assert.Equal(t, "correct-horse", gotBody["password"])
}

func TestHTTPErrorMapping(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte("invalid token"))
	}))
	defer srv.Close()

	client := New(srv.URL, "bad-key")
	_, err := client.ListServices(context.Background())
	require.Error(t, err)

	assert.True(t, errors.HasCode(err, errors.ErrGatewayHTTP))
	assert.Contains(t, err.Error(), "invalid token")
}

func TestNetworkErrorDoesNotLeakToken(t *testing.T) {
	// Point at a closed server so the dial fails
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client := New(srv.URL, "super-secret-token")
	_, err := client.ListServices(context.Background())
	require.Error(t, err)

	assert.True(t, errors.HasCode(err, errors.ErrGatewayNetwork))
	assert.NotContains(t, err.Error(), "super-secret-token")
}

func TestDecodeErrorMapping(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json at all"))
	}))
	defer srv.Close()

	client := New(srv.URL, "test-key")
	_, err := client.ListServices(context.Background())
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrGatewayDecode))
}

func TestStartService(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		assert.Equal(t, http.MethodPost, r.Method)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := New(srv.URL, "test-key")
	require.NoError(t, client.StartService(context.Background(), "svc-1"))
	assert.Equal(t, "/service/svc-1/start", gotPath)
}

func TestListOperatingSystems(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/service/svc-1/os", r.URL.Path)
		json.NewEncoder(w).Encode([]map[string]interface{}{
			{"id": "debian-12", "displayname": "Debian 12", "type": "linux", "sort": 1},
			{"id": "win-2022", "displayname": "Windows Server 2022", "type": "windows", "sort": 2},
		})
	}))
	defer srv.Close()

	client := New(srv.URL, "test-key")
	oses, err := client.ListOperatingSystems(context.Background(), "svc-1")
	require.NoError(t, err)

	require.Len(t, oses, 2)
	assert.Equal(t, "Debian 12", oses[0].DisplayName)
}

func TestListIPAllocations(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/service/svc-1/ip", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"ipv4": []map[string]string{
				{"ip": "203.0.113.10", "gw": "203.0.113.1", "netmask": "255.255.255.0"},
			},
			"ipv6": []map[string]string{
				{"subnet": "2001:db8::/64", "gw": "fe80::1"},
			},
		})
	}))
	defer srv.Close()

	client := New(srv.URL, "test-key")
	ips, err := client.ListIPAllocations(context.Background(), "svc-1")
	require.NoError(t, err)

	require.Len(t, ips.IPv4, 1)
	assert.Equal(t, "203.0.113.10", ips.IPv4[0].IP)
	assert.Equal(t, "203.0.113.1", ips.IPv4[0].Gateway)
	require.Len(t, ips.IPv6, 1)
	assert.Equal(t, "2001:db8::/64", ips.IPv6[0].Subnet)
}
