// Package mocks provides shared test doubles for the store, auth and mail
// interfaces.
//
// Mocks use function fields so a test overrides only the behavior it cares
// about, with an in-memory default for everything else:
//
//	users := mocks.NewMockUserStore(alice, bob)
//	users.GetByUsernameFn = func(ctx context.Context, name string) (*domain.User, error) {
//	    return nil, store.ErrUnavailable
//	}
//
// TestifyMockUserStore is available for tests that prefer expectation-style
// mocking with testify/mock.
package mocks
