package repos

import (
	"time"

	"github.com/aloftlabs/aloft/internal/db/models"
)

func (s *RepositoryTestSuite) TestCreateRun() {
	run := s.createTestRun("build-7", "i-100", time.Now())

	s.NotZero(run.ID)
	// Result defaults on create
	s.Equal(models.RunResultUnknown, run.Result)

	fetched, err := s.runRepo.Get(s.ctx, run.ID)
	s.Require().NoError(err)
	s.Equal("build-7", fetched.BuildID)
	s.Equal("app-1", fetched.ApplicationID)
	s.Equal("i-100", fetched.InstanceID)
}

func (s *RepositoryTestSuite) TestCreateRun_Invalid() {
	err := s.runRepo.Create(s.ctx, &models.Run{BuildID: "build-7"})
	s.Error(err)

	err = s.runRepo.Create(s.ctx, &models.Run{ApplicationID: "app-1"})
	s.Error(err)
}

func (s *RepositoryTestSuite) TestUpdateRun() {
	run := s.createTestRun("build-7", "i-100", time.Now())

	err := s.runRepo.Update(s.ctx, run.ID, &models.Run{
		Status: "Failed",
		Result: models.RunResultFailed,
		Error:  "instance reported Failed",
	})
	s.Require().NoError(err)

	fetched, err := s.runRepo.Get(s.ctx, run.ID)
	s.Require().NoError(err)
	s.Equal("Failed", fetched.Status)
	s.Equal(models.RunResultFailed, fetched.Result)
	s.Equal("instance reported Failed", fetched.Error)
	// Untouched fields survive the update
	s.Equal("i-100", fetched.InstanceID)
}

func (s *RepositoryTestSuite) TestGetRunByInstanceID() {
	s.createTestRun("build-7", "i-100", time.Now())

	run, err := s.runRepo.GetByInstanceID(s.ctx, "i-100")
	s.Require().NoError(err)
	s.Equal("build-7", run.BuildID)

	_, err = s.runRepo.GetByInstanceID(s.ctx, "i-missing")
	s.Error(err)
}

func (s *RepositoryTestSuite) TestListRuns() {
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	s.createTestRun("build-7", "i-1", base)
	s.createTestRun("build-7", "i-2", base.Add(time.Minute))
	s.createTestRun("build-8", "i-3", base.Add(2*time.Minute))

	s.Run("all builds, newest first", func() {
		runs, err := s.runRepo.List(s.ctx, "", nil)
		s.Require().NoError(err)
		s.Require().Len(runs, 3)
		s.Equal("i-3", runs[0].InstanceID)
		s.Equal("i-1", runs[2].InstanceID)
	})

	s.Run("scoped to one build", func() {
		runs, err := s.runRepo.List(s.ctx, "build-7", nil)
		s.Require().NoError(err)
		s.Require().Len(runs, 2)
		s.Equal("i-2", runs[0].InstanceID)
	})

	s.Run("with limit", func() {
		runs, err := s.runRepo.List(s.ctx, "", &models.ListOptions{Limit: 1})
		s.Require().NoError(err)
		s.Require().Len(runs, 1)
		s.Equal("i-3", runs[0].InstanceID)
	})
}
