package main

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-cred-guard/internal/config"
	"github.com/MKhiriev/go-cred-guard/internal/mock"
)

func TestBootstrapAdmin_NotConfigured(t *testing.T) {
	ctrl := gomock.NewController(t)
	accounts := mock.NewMockAccountService(ctrl)

	require.NoError(t, bootstrapAdmin(context.Background(), accounts, config.Security{}))
}

func TestBootstrapAdmin_Configured(t *testing.T) {
	ctrl := gomock.NewController(t)
	accounts := mock.NewMockAccountService(ctrl)
	accounts.EXPECT().BootstrapAdmin(gomock.Any(), "root", "RootPass1!aaa").Return(true, nil)

	err := bootstrapAdmin(context.Background(), accounts, config.Security{
		BootstrapAdminIdentifier: "root",
		BootstrapAdminPassword:   "RootPass1!aaa",
	})
	require.NoError(t, err)
}

func TestBootstrapAdmin_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	accounts := mock.NewMockAccountService(ctrl)
	boom := errors.New("weak password")
	accounts.EXPECT().BootstrapAdmin(gomock.Any(), "root", "x").Return(false, boom)

	err := bootstrapAdmin(context.Background(), accounts, config.Security{
		BootstrapAdminIdentifier: "root",
		BootstrapAdminPassword:   "x",
	})
	assert.ErrorIs(t, err, boom)
}
