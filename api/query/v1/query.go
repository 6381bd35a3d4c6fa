// Package v1 is the cinestats query API shared by the HTTP and gRPC servers.
// Every query takes one string parameter and answers with one message, so
// requests and replies are google.protobuf.StringValue on the wire.
package v1

import (
	"context"

	khttp "github.com/go-kratos/kratos/v2/transport/http"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const ServiceName = "cinestats.v1.QueryService"

const (
	OperationQueryServiceRoot                   = "/cinestats.v1.QueryService/Root"
	OperationQueryServiceCantidadFilmacionesMes = "/cinestats.v1.QueryService/CantidadFilmacionesMes"
	OperationQueryServiceCantidadFilmacionesDia = "/cinestats.v1.QueryService/CantidadFilmacionesDia"
	OperationQueryServiceScoreTitulo            = "/cinestats.v1.QueryService/ScoreTitulo"
	OperationQueryServiceVotosTitulo            = "/cinestats.v1.QueryService/VotosTitulo"
	OperationQueryServiceExitoActor             = "/cinestats.v1.QueryService/ExitoActor"
	OperationQueryServiceExitoDirector          = "/cinestats.v1.QueryService/ExitoDirector"
)

// RootMessage is the body of GET /.
const RootMessage = "¡API funcionando correctamente!"

// QueryServiceServer is the server API for QueryService.
type QueryServiceServer interface {
	CantidadFilmacionesMes(context.Context, *wrapperspb.StringValue) (*wrapperspb.StringValue, error)
	CantidadFilmacionesDia(context.Context, *wrapperspb.StringValue) (*wrapperspb.StringValue, error)
	ScoreTitulo(context.Context, *wrapperspb.StringValue) (*wrapperspb.StringValue, error)
	VotosTitulo(context.Context, *wrapperspb.StringValue) (*wrapperspb.StringValue, error)
	ExitoActor(context.Context, *wrapperspb.StringValue) (*wrapperspb.StringValue, error)
	ExitoDirector(context.Context, *wrapperspb.StringValue) (*wrapperspb.StringValue, error)
}

type unaryCall func(QueryServiceServer, context.Context, *wrapperspb.StringValue) (*wrapperspb.StringValue, error)

// ---------------------------------------------------------------------------
// gRPC
// ---------------------------------------------------------------------------

func unaryHandler(fullMethod string, call unaryCall) func(interface{}, context.Context, func(interface{}) error, grpc.UnaryServerInterceptor) (interface{}, error) {
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := new(wrapperspb.StringValue)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(QueryServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(srv.(QueryServiceServer), ctx, req.(*wrapperspb.StringValue))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// QueryService_ServiceDesc is the grpc.ServiceDesc for QueryService.
var QueryService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*QueryServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "CantidadFilmacionesMes",
			Handler:    unaryHandler(OperationQueryServiceCantidadFilmacionesMes, QueryServiceServer.CantidadFilmacionesMes),
		},
		{
			MethodName: "CantidadFilmacionesDia",
			Handler:    unaryHandler(OperationQueryServiceCantidadFilmacionesDia, QueryServiceServer.CantidadFilmacionesDia),
		},
		{
			MethodName: "ScoreTitulo",
			Handler:    unaryHandler(OperationQueryServiceScoreTitulo, QueryServiceServer.ScoreTitulo),
		},
		{
			MethodName: "VotosTitulo",
			Handler:    unaryHandler(OperationQueryServiceVotosTitulo, QueryServiceServer.VotosTitulo),
		},
		{
			MethodName: "ExitoActor",
			Handler:    unaryHandler(OperationQueryServiceExitoActor, QueryServiceServer.ExitoActor),
		},
		{
			MethodName: "ExitoDirector",
			Handler:    unaryHandler(OperationQueryServiceExitoDirector, QueryServiceServer.ExitoDirector),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "cinestats/v1/query.proto",
}

func RegisterQueryServiceServer(s grpc.ServiceRegistrar, srv QueryServiceServer) {
	s.RegisterService(&QueryService_ServiceDesc, srv)
}

// ---------------------------------------------------------------------------
// HTTP
// ---------------------------------------------------------------------------

// ResultReply is the JSON envelope of every query route.
type ResultReply struct {
	Resultado string `json:"resultado"`
}

// StatusReply is the JSON body of the root route.
type StatusReply struct {
	Message string `json:"message"`
}

func RegisterQueryServiceHTTPServer(s *khttp.Server, srv QueryServiceServer) {
	r := s.Route("/")
	r.GET("/", _QueryService_Root_HTTP_Handler)
	r.GET("/cantidad_filmaciones_mes/{mes}", queryHTTPHandler(srv, "mes", OperationQueryServiceCantidadFilmacionesMes, QueryServiceServer.CantidadFilmacionesMes))
	r.GET("/cantidad_filmaciones_dia/{dia}", queryHTTPHandler(srv, "dia", OperationQueryServiceCantidadFilmacionesDia, QueryServiceServer.CantidadFilmacionesDia))
	r.GET("/score_titulo/{titulo}", queryHTTPHandler(srv, "titulo", OperationQueryServiceScoreTitulo, QueryServiceServer.ScoreTitulo))
	r.GET("/votos_titulo/{titulo}", queryHTTPHandler(srv, "titulo", OperationQueryServiceVotosTitulo, QueryServiceServer.VotosTitulo))
	r.GET("/exito_actor/{nombre_actor}", queryHTTPHandler(srv, "nombre_actor", OperationQueryServiceExitoActor, QueryServiceServer.ExitoActor))
	r.GET("/exito_director/{nombre_director}", queryHTTPHandler(srv, "nombre_director", OperationQueryServiceExitoDirector, QueryServiceServer.ExitoDirector))
}

func _QueryService_Root_HTTP_Handler(ctx khttp.Context) error {
	khttp.SetOperation(ctx, OperationQueryServiceRoot)
	h := ctx.Middleware(func(context.Context, interface{}) (interface{}, error) {
		return &StatusReply{Message: RootMessage}, nil
	})
	out, err := h(ctx, nil)
	if err != nil {
		return err
	}
	return ctx.Result(200, out)
}

func queryHTTPHandler(srv QueryServiceServer, param, operation string, call unaryCall) khttp.HandlerFunc {
	return func(ctx khttp.Context) error {
		raw := ctx.Vars().Get(param)
		khttp.SetOperation(ctx, operation)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(srv, ctx, req.(*wrapperspb.StringValue))
		})
		out, err := h(ctx, wrapperspb.String(raw))
		if err != nil {
			return err
		}
		reply := out.(*wrapperspb.StringValue)
		return ctx.Result(200, &ResultReply{Resultado: reply.GetValue()})
	}
}
