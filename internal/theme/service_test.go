package theme_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"countries/internal/theme"
	"countries/internal/theme/mocks"
	"countries/pkg/platform/sentinel"
)

func TestParse(t *testing.T) {
	got, err := theme.Parse(" DARK ")
	require.NoError(t, err)
	assert.Equal(t, theme.Dark, got)

	_, err = theme.Parse("sepia")
	assert.ErrorIs(t, err, sentinel.ErrInvalidInput)
}

func TestToggle(t *testing.T) {
	assert.Equal(t, theme.Dark, theme.Light.Toggle())
	assert.Equal(t, theme.Light, theme.Dark.Toggle())
	assert.Equal(t, theme.Light, theme.Dark.Toggle().Toggle().Toggle())
}

type ServiceSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	store   *mocks.MockStore
	service *theme.Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.store = mocks.NewMockStore(s.ctrl)
	svc, err := theme.NewService(s.store)
	s.Require().NoError(err)
	s.service = svc
}

func (s *ServiceSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *ServiceSuite) TestNewRequiresStore() {
	_, err := theme.NewService(nil)
	s.Error(err)
}

func (s *ServiceSuite) TestInitWithoutStoredEntryKeepsDefault() {
	s.store.EXPECT().Load(gomock.Any()).Return(theme.Theme(""), sentinel.ErrNotFound)

	s.Require().NoError(s.service.Init(context.Background()))
	s.Equal(theme.Light, s.service.Current())
}

func (s *ServiceSuite) TestInitRestoresStoredTheme() {
	s.store.EXPECT().Load(gomock.Any()).Return(theme.Dark, nil)

	s.Require().NoError(s.service.Init(context.Background()))
	s.Equal(theme.Dark, s.service.Current())
}

func (s *ServiceSuite) TestInitStorageFailureKeepsDefault() {
	s.store.EXPECT().Load(gomock.Any()).Return(theme.Theme(""), errors.New("disk gone"))

	err := s.service.Init(context.Background())
	s.Error(err)
	s.Equal(theme.Light, s.service.Current())
}

func (s *ServiceSuite) TestTogglePersistsEveryChange() {
	gomock.InOrder(
		s.store.EXPECT().Save(gomock.Any(), theme.Dark).Return(nil),
		s.store.EXPECT().Save(gomock.Any(), theme.Light).Return(nil),
	)

	got, err := s.service.Toggle(context.Background())
	s.Require().NoError(err)
	s.Equal(theme.Dark, got)

	got, err = s.service.Toggle(context.Background())
	s.Require().NoError(err)
	s.Equal(theme.Light, got)
}

func (s *ServiceSuite) TestFailedSaveLeavesThemeUnchanged() {
	s.store.EXPECT().Save(gomock.Any(), theme.Dark).Return(errors.New("read-only"))

	got, err := s.service.Set(context.Background(), theme.Dark)
	s.Error(err)
	s.Equal(theme.Light, got)
	s.Equal(theme.Light, s.service.Current())
}

func (s *ServiceSuite) TestSetRejectsUnknownTheme() {
	_, err := s.service.Set(context.Background(), theme.Theme("sepia"))
	s.ErrorIs(err, sentinel.ErrInvalidInput)
}
