package repos

func (s *RepositoryTestSuite) TestUpsertVariable() {
	replaced, err := s.variableRepo.Upsert(s.ctx, "build-7", "instance-id", "i-100")
	s.Require().NoError(err)
	s.False(replaced)

	variable, found, err := s.variableRepo.Get(s.ctx, "build-7", "instance-id")
	s.Require().NoError(err)
	s.Require().True(found)
	s.Equal("i-100", variable.Value)

	// Last write wins
	replaced, err = s.variableRepo.Upsert(s.ctx, "build-7", "instance-id", "i-200")
	s.Require().NoError(err)
	s.True(replaced)

	variable, found, err = s.variableRepo.Get(s.ctx, "build-7", "instance-id")
	s.Require().NoError(err)
	s.Require().True(found)
	s.Equal("i-200", variable.Value)
}

func (s *RepositoryTestSuite) TestGetVariable_Missing() {
	variable, found, err := s.variableRepo.Get(s.ctx, "build-7", "no-such-key")
	s.Require().NoError(err)
	s.False(found)
	s.Nil(variable)
}

func (s *RepositoryTestSuite) TestVariablesScopedByBuild() {
	_, err := s.variableRepo.Upsert(s.ctx, "build-7", "instance-id", "i-100")
	s.Require().NoError(err)
	_, err = s.variableRepo.Upsert(s.ctx, "build-8", "instance-id", "i-900")
	s.Require().NoError(err)

	variable, found, err := s.variableRepo.Get(s.ctx, "build-7", "instance-id")
	s.Require().NoError(err)
	s.Require().True(found)
	s.Equal("i-100", variable.Value)

	variable, found, err = s.variableRepo.Get(s.ctx, "build-8", "instance-id")
	s.Require().NoError(err)
	s.Require().True(found)
	s.Equal("i-900", variable.Value)
}

func (s *RepositoryTestSuite) TestListVariablesByBuildID() {
	_, err := s.variableRepo.Upsert(s.ctx, "build-7", "zone", "us-east")
	s.Require().NoError(err)
	_, err = s.variableRepo.Upsert(s.ctx, "build-7", "instance-id", "i-100")
	s.Require().NoError(err)
	_, err = s.variableRepo.Upsert(s.ctx, "build-8", "zone", "eu-west")
	s.Require().NoError(err)

	variables, err := s.variableRepo.ListByBuildID(s.ctx, "build-7")
	s.Require().NoError(err)
	s.Require().Len(variables, 2)
	// Sorted by name
	s.Equal("instance-id", variables[0].Name)
	s.Equal("zone", variables[1].Name)
}

func (s *RepositoryTestSuite) TestUpsertVariable_Invalid() {
	_, err := s.variableRepo.Upsert(s.ctx, "build-7", "", "value")
	s.Error(err)

	_, err = s.variableRepo.Upsert(s.ctx, "", "instance-id", "value")
	s.Error(err)
}
