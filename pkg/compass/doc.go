// Package compass embeds the apprenticeship compatibility engine in a Go
// program: batch scoring of opportunities for one applicant and the
// personality quiz that produces the applicant's trait and work-value
// vectors.
//
// # Scoring
//
//	engine, _ := compass.New(ctx)
//	ranking, _ := engine.Score(ctx, compass.Applicant{
//	    Region:    "ZH",
//	    Interests: []string{"Informatik"},
//	}, candidates, compass.ScoreOptions{BatchSize: 10})
//
// Applicants without vectors are scored in cold-start mode, which also
// limits how many results of one category are returned.
//
// # Quiz
//
//	quiz := engine.Quiz()
//	sess, _ := quiz.Start(ctx)
//	_, _, _ = quiz.Toggle(ctx, sess.ID, "tile-id")
//	...
//	res, _ := quiz.Result(ctx, sess.ID)
//	ranking, _ = engine.Score(ctx, res.Apply(applicant), candidates, compass.ScoreOptions{})
//
// Sessions are kept in memory unless WithValkey is given.
package compass
